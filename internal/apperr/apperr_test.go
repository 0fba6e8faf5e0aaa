package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("saving chat: %w", Wrap(InternalFailure, "Could not save chat.", cause))

	assert.Equal(t, InternalFailure, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, NotFound, KindOf(New(NotFound, "Chat not found.")))
	assert.Equal(t, InternalFailure, KindOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		InvalidInput:    http.StatusBadRequest,
		Unauthorized:    http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		NotFound:        http.StatusNotFound,
		Conflict:        http.StatusConflict,
		UpstreamFailure: http.StatusBadGateway,
		InternalFailure: http.StatusInternalServerError,
	}
	for kind, want := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, want, kind.HTTPStatus())
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Chat not found.", Message(New(NotFound, "Chat not found.")))
	assert.Equal(t, "Internal server error.", Message(errors.New("sql: connection refused")))
}
