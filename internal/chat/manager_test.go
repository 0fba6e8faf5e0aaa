package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/persona"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const userID = "u-1"

type fixture struct {
	mgr      *Manager
	store    *storage.MemoryStore
	resolver *persona.Resolver
}

func newFixture(t *testing.T, profile *models.UserProfile) fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	resolver, err := persona.NewResolver()
	require.NoError(t, err)
	if profile != nil {
		require.NoError(t, store.PutProfile(context.Background(), userID, *profile))
	}

	mgr := NewManager(store, resolver, zap.NewNop())
	n := 0
	mgr.newID = func() string {
		n++
		return fmt.Sprintf("chat-%d", n)
	}
	return fixture{mgr: mgr, store: store, resolver: resolver}
}

func seed(t *testing.T, f fixture, chats ...models.ChatSession) {
	t.Helper()
	require.NoError(t, f.store.PutChats(context.Background(), userID, chats))
}

func stored(t *testing.T, f fixture) []models.ChatSession {
	t.Helper()
	chats, err := f.store.GetChats(context.Background(), userID)
	require.NoError(t, err)
	return chats
}

var sparkyProfile = models.UserProfile{Email: "a@x.com", Name: "Ravi", Age: models.StringAge("10"), ClassGroup: "5th Class"}

func TestCreate_SeedsPersonaAndGreeting(t *testing.T) {
	f := newFixture(t, &sparkyProfile)

	session, err := f.mgr.Create(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "chat-1", session.ID)
	assert.Equal(t, "New Chat", session.Title)
	require.Len(t, session.History, 2)
	assert.Equal(t, models.RoleUser, session.History[0].Role)
	assert.Equal(t, f.resolver.Resolve(sparkyProfile), session.History[0].Text())
	assert.Equal(t, models.RoleModel, session.History[1].Role)
	assert.Contains(t, session.History[1].Text(), "Ravi")
	assert.Equal(t, "Hello Ravi! I understand your profile. How can I help you today?", session.History[1].Text())

	chats := stored(t, f)
	require.Len(t, chats, 1)
	if diff := cmp.Diff(session, chats[0]); diff != "" {
		t.Errorf("persisted session mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_AppendsAndIDsAreUnique(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	f.mgr.newID = NewManager(nil, nil, nil).newID

	a, err := f.mgr.Create(context.Background(), userID)
	require.NoError(t, err)
	b, err := f.mgr.Create(context.Background(), userID)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, stored(t, f), 2)
}

func TestCreate_ProfileErrors(t *testing.T) {
	t.Run("no profile", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.mgr.Create(context.Background(), userID)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
		assert.Empty(t, stored(t, f))
	})

	t.Run("profile without class", func(t *testing.T) {
		f := newFixture(t, &models.UserProfile{Email: "a@x.com"})
		_, err := f.mgr.Create(context.Background(), userID)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Empty(t, stored(t, f))
	})
}

func TestList_OnlySummaries(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	seed(t, f,
		models.ChatSession{ID: "a", Title: "Fractions", History: []models.Turn{models.NewTurn(models.RoleUser, "x")}},
		models.ChatSession{ID: "b", Title: "New Chat"},
	)

	got, err := f.mgr.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []models.ChatSummary{{ID: "a", Title: "Fractions"}, {ID: "b", Title: "New Chat"}}, got)

	empty, err := f.mgr.List(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGet(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	want := models.ChatSession{ID: "a", Title: "T", History: []models.Turn{models.NewTurn(models.RoleUser, "x")}}
	seed(t, f, want)

	got, err := f.mgr.Get(context.Background(), userID, "a")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = f.mgr.Get(context.Background(), userID, "missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSave_Upsert(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	original := models.ChatSession{ID: "a", Title: "T", History: []models.Turn{models.NewTurn(models.RoleUser, "x")}}
	seed(t, f, original, models.ChatSession{ID: "b", Title: "U"})

	t.Run("existing id replaces in place", func(t *testing.T) {
		updated := original
		updated.History = append([]models.Turn{}, original.History...)
		updated.History = append(updated.History, models.NewTurn(models.RoleModel, "y"))

		created, err := f.mgr.Save(context.Background(), userID, updated)
		require.NoError(t, err)
		assert.False(t, created)

		chats := stored(t, f)
		require.Len(t, chats, 2)
		assert.Equal(t, updated, chats[0])
	})

	t.Run("new id appends", func(t *testing.T) {
		fresh := models.ChatSession{ID: "client-made", Title: "Mine"}
		created, err := f.mgr.Save(context.Background(), userID, fresh)
		require.NoError(t, err)
		assert.True(t, created)

		chats := stored(t, f)
		require.Len(t, chats, 3)
		assert.Equal(t, "client-made", chats[2].ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := f.mgr.Save(context.Background(), userID, models.ChatSession{Title: "x"})
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Len(t, stored(t, f), 3)
	})
}

func TestRename(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	created, err := f.mgr.Create(context.Background(), userID)
	require.NoError(t, err)

	for _, title := range []string{"", "   "} {
		err = f.mgr.Rename(context.Background(), userID, created.ID, title)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err), "title %q", title)
	}

	err = f.mgr.Rename(context.Background(), userID, "missing", "X")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	require.NoError(t, f.mgr.Rename(context.Background(), userID, created.ID, "X"))
	got, err := f.mgr.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	if diff := cmp.Diff(created.History, got.History); diff != "" {
		t.Errorf("rename touched the transcript (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t, &sparkyProfile)
	seed(t, f, models.ChatSession{ID: "a", Title: "A"}, models.ChatSession{ID: "b", Title: "B"})
	before := stored(t, f)

	err := f.mgr.Delete(context.Background(), userID, "missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	if diff := cmp.Diff(before, stored(t, f)); diff != "" {
		t.Errorf("failed delete changed the collection (-want +got):\n%s", diff)
	}

	require.NoError(t, f.mgr.Delete(context.Background(), userID, "a"))
	assert.Equal(t, []models.ChatSession{{ID: "b", Title: "B"}}, stored(t, f))
}

type failingStore struct{ Store }

func (failingStore) GetChats(context.Context, string) ([]models.ChatSession, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreFailureIsInternal(t *testing.T) {
	mgr := NewManager(failingStore{}, nil, zap.NewNop())
	_, err := mgr.List(context.Background(), userID)
	assert.Equal(t, apperr.InternalFailure, apperr.KindOf(err))
	assert.Equal(t, "Failed to load chats.", apperr.Message(err))
}
