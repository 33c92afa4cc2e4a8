// Package main はAPIサーバーのエントリポイント。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hawk-credential-service/config"
	"hawk-credential-service/internal/domain"
	"hawk-credential-service/internal/handler"
	"hawk-credential-service/internal/infra"
	"hawk-credential-service/internal/middleware"
	"hawk-credential-service/internal/repository"
	"hawk-credential-service/internal/usecase"
)

func main() {
	ctx := context.Background()

	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	cfg := config.Load()

	// トレーサー初期化（ロガー設定の前に実行）
	tp, err := infra.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				slog.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	infra.SetupLogger(cfg)

	directory, store, cleanup, err := buildBackends(ctx, cfg)
	if err != nil {
		slog.Error("failed to init backends", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	// DI
	service := usecase.NewIssuanceService(
		usecase.NewAuthService(directory),
		usecase.NewCredentialIssuer(usecase.IssuerConfig{
			Algorithm: cfg.Algorithm,
			Lifespan:  cfg.KeyLifespan,
		}),
		store,
	)
	h := handler.NewCredentialHandler(service, metrics)
	router := handler.NewRouter(h, metrics, reg, cfg)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server",
		"port", cfg.Port,
		"user_directory", cfg.UserDirectory,
		"credential_store", cfg.CredentialStore,
		"algorithm", cfg.Algorithm,
		"key_lifespan", cfg.KeyLifespan.String(),
	)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// buildBackends は設定に応じてユーザーディレクトリとクレデンシャルストアを組み立てる。
func buildBackends(ctx context.Context, cfg *config.Config) (usecase.UserDirectory, usecase.CredentialStore, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	needDB := cfg.UserDirectory == config.BackendDatabase || cfg.CredentialStore == config.BackendDatabase
	var repos struct {
		users       *repository.UserRepository
		credentials *repository.CredentialRepository
	}
	if needDB {
		if cfg.DatabaseURL == "" {
			return nil, nil, cleanup, fmt.Errorf("DATABASE_URL is not set")
		}
		db, err := infra.NewDB(cfg.DatabaseURL, cfg)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("init database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
		repos.users = repository.NewUserRepository(db)
		repos.credentials = repository.NewCredentialRepository(db)
	}

	var directory usecase.UserDirectory
	switch cfg.UserDirectory {
	case config.BackendMemory:
		if cfg.DefaultUser.PasswordHash == "" {
			return nil, nil, cleanup, fmt.Errorf("DEFAULT_USER_PASSWORD_HASH is not set")
		}
		directory = repository.NewMemoryUserDirectory(&domain.User{
			ID:           cfg.DefaultUser.ID,
			Username:     cfg.DefaultUser.Username,
			PasswordHash: cfg.DefaultUser.PasswordHash,
		})
	case config.BackendDatabase:
		directory = repos.users
	default:
		return nil, nil, cleanup, fmt.Errorf("unknown USER_DIRECTORY %q", cfg.UserDirectory)
	}

	var store usecase.CredentialStore
	switch cfg.CredentialStore {
	case config.BackendRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("init redis: %w", err)
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		})
		store = repository.NewRedisCredentialStore(client)
	case config.BackendDatabase:
		store = repos.credentials
	default:
		return nil, nil, cleanup, fmt.Errorf("unknown CREDENTIAL_STORE %q", cfg.CredentialStore)
	}

	return directory, store, cleanup, nil
}
