package auth

import (
	"context"
	"testing"
	"time"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*Service, *storage.MemoryStore) {
	t.Helper()
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	return NewService(store, issuer, zap.NewNop()), store
}

func TestService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	reg, err := svc.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.User.ID)
	assert.NotEmpty(t, reg.Token)
	assert.NotEqual(t, "pw", reg.User.PasswordHash)

	profile, err := store.GetProfile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{Email: "a@x.com"}, profile)

	login, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	claims, err := svc.tokens.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.ID)
}

func TestService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "a@x.com", "nope"},
		{"unknown email", "b@x.com", "pw"},
		{"empty password", "a@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
		})
	}
}

func TestService_RegisterFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "other")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	_, err = svc.Register(ctx, "", "pw")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = svc.Register(ctx, "c@x.com", "")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}
