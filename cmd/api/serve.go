package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/auth"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/chat"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/config"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/handler"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/llm"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/logging"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/persona"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("port", "", "listen port (PORT)")
	flags.String("store", "", "storage driver: json, sqlite, redis or memory (STORE_DRIVER)")
	flags.String("llm-provider", "", "Gemini client: genai or rest (LLM_PROVIDER)")
	flags.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	for key, name := range map[string]string{
		config.KeyPort:        "port",
		config.KeyStoreDriver: "store",
		config.KeyLLMProvider: "llm-provider",
		config.KeyLogLevel:    "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	// the bare root command serves too
	rootCmd.Flags().AddFlagSet(flags)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	logger, err := logging.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	generator, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	resolver, err := persona.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to load personas: %w", err)
	}

	h := handler.New(handler.Options{
		Auth:       auth.NewService(store, tokens, logger),
		Chats:      chat.NewManager(store, resolver, logger),
		Profiles:   store,
		Personas:   resolver,
		Generator:  generator,
		LLMTimeout: cfg.LLMTimeout,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(h, tokens, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server is running",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("llm_provider", cfg.LLMProvider),
			zap.String("model", cfg.GeminiModel))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	driver := storage.Driver(cfg.StoreDriver)
	switch driver {
	case storage.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return storage.NewStore(driver, storage.WithRedisClient(client))
	case storage.DriverSQLite:
		return storage.NewStore(driver, storage.WithPath(cfg.SQLitePath))
	default:
		return storage.NewStore(driver, storage.WithPath(cfg.DBPath))
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Generator, error) {
	if cfg.LLMProvider == "rest" {
		return llm.NewRESTClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.LLMTimeout, logger)
	}
	return llm.NewGenAIClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, logger)
}
