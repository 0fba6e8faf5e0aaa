package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drivers returns a fresh store per driver. Redis only runs when REDIS_ADDR is set.
func drivers(t *testing.T) map[string]func(t *testing.T) Store {
	d := map[string]func(t *testing.T) Store{
		"json": func(t *testing.T) Store {
			s, err := NewStore(DriverJSON, WithPath(filepath.Join(t.TempDir(), "db.json")))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewStore(DriverSQLite, WithPath(filepath.Join(t.TempDir(), "tutor.db")))
			require.NoError(t, err)
			return s
		},
		"memory": func(t *testing.T) Store {
			s, err := NewStore(DriverMemory)
			require.NoError(t, err)
			return s
		},
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		d["redis"] = func(t *testing.T) Store {
			client := redis.NewClient(&redis.Options{Addr: addr})
			s, err := NewStore(DriverRedis, WithRedisClient(client), WithKeyPrefix("test:"+t.Name()+":"))
			require.NoError(t, err)
			return s
		}
	}
	return d
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()
	for name, open := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("create and find user", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				user := models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "hash"}
				require.NoError(t, s.CreateUser(ctx, user))

				got, err := s.FindUserByEmail(ctx, "a@x.com")
				require.NoError(t, err)
				assert.Equal(t, user, got)

				_, err = s.FindUserByEmail(ctx, "b@x.com")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("duplicate email", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.CreateUser(ctx, models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h1"}))
				err := s.CreateUser(ctx, models.User{ID: "u-2", Email: "a@x.com", PasswordHash: "h2"})
				assert.ErrorIs(t, err, ErrEmailExists)
			})

			t.Run("registration seeds profile and chats", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.CreateUser(ctx, models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h"}))

				profile, err := s.GetProfile(ctx, "u-1")
				require.NoError(t, err)
				assert.Equal(t, models.UserProfile{Email: "a@x.com"}, profile)

				chats, err := s.GetChats(ctx, "u-1")
				require.NoError(t, err)
				assert.NotNil(t, chats)
				assert.Empty(t, chats)
			})

			t.Run("profile round trip", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				_, err := s.GetProfile(ctx, "nobody")
				assert.ErrorIs(t, err, ErrNotFound)

				profile := models.UserProfile{Email: "a@x.com", Name: "Asha", Age: models.StringAge("15"), ClassGroup: "10th Class", Gender: "Girl"}
				require.NoError(t, s.PutProfile(ctx, "u-1", profile))
				got, err := s.GetProfile(ctx, "u-1")
				require.NoError(t, err)
				assert.Equal(t, profile, got)
			})

			t.Run("chats round trip", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				chats := []models.ChatSession{
					{ID: "c-1", Title: "New Chat", History: []models.Turn{
						models.NewTurn(models.RoleUser, "persona"),
						models.NewTurn(models.RoleModel, "Hello Asha!"),
					}},
					{ID: "c-2", Title: "Algebra", History: []models.Turn{}},
				}
				require.NoError(t, s.PutChats(ctx, "u-1", chats))

				got, err := s.GetChats(ctx, "u-1")
				require.NoError(t, err)
				assert.Equal(t, chats, got)

				other, err := s.GetChats(ctx, "u-2")
				require.NoError(t, err)
				assert.Empty(t, other)
			})
		})
	}
}

func TestJSONStore_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	s, err := NewJSONStore(path)
	require.NoError(t, err)

	require.NoError(t, s.CreateUser(ctx, models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"users": [{"id": "u-1", "email": "a@x.com", "password": "h"}],
		"profiles": {"u-1": {"email": "a@x.com"}},
		"chats": {"u-1": []}
	}`, string(raw))
}

func TestJSONStore_ReopensExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"users": [{"id": "u-9", "email": "old@x.com", "password": "$2a$10$abc"}],
		"profiles": {"u-9": {"email": "old@x.com", "name": "Old", "age": 12, "classGroup": "7th Class"}},
		"chats": {}
	}`), 0o644))

	s, err := NewJSONStore(path)
	require.NoError(t, err)

	profile, err := s.GetProfile(ctx, "u-9")
	require.NoError(t, err)
	assert.Equal(t, models.NumberAge(12), profile.Age)
	assert.Equal(t, "7th Class", profile.ClassGroup)

	user, err := s.FindUserByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abc", user.PasswordHash)
}

func TestMemoryStore_DoesNotAlias(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	chats := []models.ChatSession{{ID: "c-1", Title: "A", History: []models.Turn{models.NewTurn(models.RoleUser, "hi")}}}
	require.NoError(t, s.PutChats(ctx, "u-1", chats))
	chats[0].Title = "mutated"
	chats[0].History[0].Parts[0].Text = "mutated"

	got, err := s.GetChats(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "hi", got[0].History[0].Text())
}

func TestNewStore_UnknownDriver(t *testing.T) {
	_, err := NewStore("mongo")
	assert.Error(t, err)

	_, err = NewStore(DriverRedis)
	assert.Error(t, err)
}
