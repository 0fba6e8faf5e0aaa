package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already exists")
)

// Store is the persistence contract. Every call is a complete read or write of
// one collection entry; callers do their own read-modify-write.
type Store interface {
	// CreateUser inserts the user together with an empty profile holding only
	// the email and an empty chat collection. ErrEmailExists on duplicates.
	CreateUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	PutProfile(ctx context.Context, userID string, profile models.UserProfile) error

	// GetChats returns an empty slice for users without chats.
	GetChats(ctx context.Context, userID string) ([]models.ChatSession, error)
	PutChats(ctx context.Context, userID string, chats []models.ChatSession) error

	Close() error
}

type Driver string

const (
	DriverJSON   Driver = "json"
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

type Option func(*options)

type options struct {
	path        string
	redisClient *redis.Client
	keyPrefix   string
}

// WithPath sets the file used by the json and sqlite drivers.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

func WithRedisClient(client *redis.Client) Option {
	return func(o *options) { o.redisClient = client }
}

// WithKeyPrefix namespaces redis keys.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.keyPrefix = prefix }
}

// NewStore opens the store for the given driver.
func NewStore(driver Driver, opts ...Option) (Store, error) {
	o := &options{keyPrefix: "tutor:"}
	for _, opt := range opts {
		opt(o)
	}

	switch driver {
	case DriverJSON, "":
		if o.path == "" {
			o.path = "db.json"
		}
		return NewJSONStore(o.path)
	case DriverSQLite:
		if o.path == "" {
			o.path = "tutor.db"
		}
		return NewSQLiteStore(o.path)
	case DriverRedis:
		if o.redisClient == nil {
			return nil, fmt.Errorf("redis driver requires a client")
		}
		return NewRedisStore(o.redisClient, o.keyPrefix), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func emptyProfile(user models.User) models.UserProfile {
	return models.UserProfile{Email: user.Email}
}

func copyChats(chats []models.ChatSession) []models.ChatSession {
	out := make([]models.ChatSession, len(chats))
	for i, c := range chats {
		out[i] = c
		if c.History != nil {
			out[i].History = make([]models.Turn, len(c.History))
			for j, turn := range c.History {
				out[i].History[j] = turn
				if turn.Parts != nil {
					out[i].History[j].Parts = append([]models.Part(nil), turn.Parts...)
				}
			}
		}
	}
	return out
}
