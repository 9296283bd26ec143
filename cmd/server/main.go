package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"quote_backend/internal/app/config"
	"quote_backend/internal/app/di"
	"quote_backend/internal/app/router"
	authhandler "quote_backend/internal/feature/auth/transport/handler"
	authusecase "quote_backend/internal/feature/auth/usecase"
	quotehandler "quote_backend/internal/feature/quotes/transport/handler"
	quoteusecase "quote_backend/internal/feature/quotes/usecase"
	jwtmw "quote_backend/internal/platform/jwt"
	"quote_backend/internal/platform/logging"
	"quote_backend/internal/platform/password"
	infraredis "quote_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 設定
	cfg, err := config.Load()
	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		// JWT_SECRETなしでは署名できないため起動しない
		slog.Warn("JWT_SECRET is not set. Set a strong secret before starting the server.")
		return err
	}

	// ストレージ
	stores, err := di.NewStores(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}
	quoteRepo := di.NewQuoteRepository(rdb, cfg.Redis.QuotesTTL, stores.Quotes)

	// 外部生成サービス
	generator, err := di.NewQuoteGenerator(ctx, cfg.Gemini)
	if err != nil {
		return err
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(
		stores.Users,
		password.NewBcryptHasher(cfg.Auth.BcryptCost),
		jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
	)
	quoteUC := quoteusecase.NewQuoteUsecase(quoteRepo, generator, cfg.Gemini.Timeout)

	// ルータ生成
	r := router.NewRouter(
		authhandler.NewAuthHandler(authUC),
		quotehandler.NewQuoteHandler(quoteUC),
		jwtmw.NewVerifier(cfg.Auth.JWTSecret),
		router.Options{CORSAllowOrigins: cfg.Server.CORSAllowOrigins},
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "driver", string(stores.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
