package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all server settings. Values come from flags, then the
// environment, then .env, then defaults.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	LLMProvider   string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	LLMTimeout    time.Duration

	StoreDriver   string
	DBPath        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Keys, matching the environment variable names.
const (
	KeyPort          = "PORT"
	KeyGinMode       = "GIN_MODE"
	KeyLogLevel      = "LOG_LEVEL"
	KeyJWTSecret     = "JWT_SECRET"
	KeyTokenTTL      = "TOKEN_TTL"
	KeyLLMProvider   = "LLM_PROVIDER"
	KeyGeminiAPIKey  = "GEMINI_API_KEY"
	KeyGeminiModel   = "GEMINI_MODEL"
	KeyGeminiBaseURL = "GEMINI_BASE_URL"
	KeyLLMTimeout    = "LLM_TIMEOUT"
	KeyStoreDriver   = "STORE_DRIVER"
	KeyDBPath        = "DB_PATH"
	KeySQLitePath    = "SQLITE_PATH"
	KeyRedisAddr     = "REDIS_ADDR"
	KeyRedisPassword = "REDIS_PASSWORD"
	KeyRedisDB       = "REDIS_DB"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyGinMode, "release")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTokenTTL, "24h")
	v.SetDefault(KeyLLMProvider, "genai")
	v.SetDefault(KeyGeminiModel, "gemini-2.0-flash")
	v.SetDefault(KeyLLMTimeout, "60s")
	v.SetDefault(KeyStoreDriver, "json")
	v.SetDefault(KeyDBPath, "db.json")
	v.SetDefault(KeySQLitePath, "tutor.db")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
}

// LoadDotEnv loads .env files into the process environment. Missing files are fine.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	SetDefaults(v)

	cfg := &Config{
		Port:          v.GetString(KeyPort),
		GinMode:       v.GetString(KeyGinMode),
		LogLevel:      v.GetString(KeyLogLevel),
		JWTSecret:     v.GetString(KeyJWTSecret),
		TokenTTL:      v.GetDuration(KeyTokenTTL),
		LLMProvider:   strings.ToLower(v.GetString(KeyLLMProvider)),
		GeminiAPIKey:  v.GetString(KeyGeminiAPIKey),
		GeminiModel:   v.GetString(KeyGeminiModel),
		GeminiBaseURL: v.GetString(KeyGeminiBaseURL),
		LLMTimeout:    v.GetDuration(KeyLLMTimeout),
		StoreDriver:   strings.ToLower(v.GetString(KeyStoreDriver)),
		DBPath:        v.GetString(KeyDBPath),
		SQLitePath:    v.GetString(KeySQLitePath),
		RedisAddr:     v.GetString(KeyRedisAddr),
		RedisPassword: v.GetString(KeyRedisPassword),
		RedisDB:       v.GetInt(KeyRedisDB),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, KeyGeminiAPIKey)
	}
	if c.JWTSecret == "" {
		missing = append(missing, KeyJWTSecret)
	}
	if len(missing) > 0 {
		return fmt.Errorf("make sure %s are defined in your .env file", strings.Join(missing, " and "))
	}

	switch c.LLMProvider {
	case "genai", "rest":
	default:
		return fmt.Errorf("unknown %s %q (want genai or rest)", KeyLLMProvider, c.LLMProvider)
	}
	switch c.StoreDriver {
	case "json", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown %s %q (want json, sqlite, redis or memory)", KeyStoreDriver, c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%s must be positive", KeyTokenTTL)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyLLMTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
