package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("could not open store", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	notes := NewCollection[*Note](KindNotes, store, logger)
	bookmarks := NewCollection[*Bookmark](KindBookmarks, store, logger)
	if err := notes.Load(ctx); err != nil {
		logger.Fatal("could not load notes", zap.Error(err))
	}
	if err := bookmarks.Load(ctx); err != nil {
		logger.Fatal("could not load bookmarks", zap.Error(err))
	}

	var suggester Suggester
	if cfg.OpenAIAPIKey != "" {
		suggester = NewOpenAISuggester(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	} else {
		logger.Info("openai_api_key not set, AI suggestions disabled")
	}

	srv := newServer(notes, bookmarks, suggester, logger)
	var handler http.Handler = srv.routes()
	if keys := parseAPIKeys(cfg.APIKeys); len(keys) > 0 {
		handler = authMiddleware(keys)(handler)
	}
	handler = loggingMiddleware(logger)(handler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server is listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("server is shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// openStore builds the configured blob store and returns it with a closer.
func openStore(ctx context.Context, cfg *Config, logger *zap.Logger) (BlobStore, func() error, error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis (%s): %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client), client.Close, nil
	default:
		store, err := NewBadgerStore(cfg.BadgerPath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}
