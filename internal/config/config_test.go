package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(KeyGeminiAPIKey, "g-key")
	t.Setenv(KeyJWTSecret, "s3cret")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "genai", cfg.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "json", cfg.StoreDriver)
	assert.Equal(t, "db.json", cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(KeyGeminiAPIKey, "g-key")
	t.Setenv(KeyJWTSecret, "s3cret")
	t.Setenv(KeyPort, "8080")
	t.Setenv(KeyStoreDriver, "SQLite")
	t.Setenv(KeyLLMProvider, "rest")
	t.Setenv(KeyLLMTimeout, "15s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "rest", cfg.LLMProvider)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv(KeyGeminiAPIKey, "")
	t.Setenv(KeyJWTSecret, "")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyGeminiAPIKey)
	assert.Contains(t, err.Error(), KeyJWTSecret)
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	base := Config{GeminiAPIKey: "k", JWTSecret: "s", LLMProvider: "genai", StoreDriver: "json", TokenTTL: time.Hour, LLMTimeout: time.Second}
	require.NoError(t, base.Validate())

	bad := base
	bad.StoreDriver = "mongo"
	assert.Error(t, bad.Validate())

	bad = base
	bad.LLMProvider = "openai"
	assert.Error(t, bad.Validate())

	bad = base
	bad.TokenTTL = 0
	assert.Error(t, bad.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TUTOR_TEST_DOTENV=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TUTOR_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("TUTOR_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
