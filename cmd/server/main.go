// Command server runs the stockledger HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"stockledger/internal/core/types"
	"stockledger/internal/domain/auth"
	"stockledger/internal/domain/reports"
	v1 "stockledger/internal/infrastructure/http/v1"
	"stockledger/internal/infrastructure/storage/postgres"
	"stockledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "production") == "development",
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}

func run(log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := mustEnv("DATABASE_URL")
	jwtSecret := mustEnv("JWT_SECRET")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		return err
	}
	defer pool.Close()

	txOpts := postgres.DefaultTxOptions()
	txOpts.LockTimeout = getEnvDuration("LOCK_TIMEOUT", txOpts.LockTimeout)
	txManager := postgres.NewTxManagerWithOptions(pool, txOpts)

	// A broken rule expression must fail boot, never a request.
	//
	// LOW_STOCK_RULE can only narrow the report: candidates are
	// pre-filtered in SQL by on_hand <= effective threshold, and the
	// rule is applied to those rows. An expression wider than that
	// bound (e.g. on_hand <= threshold * 2.0) will not see the extra
	// rows.
	rule, err := reports.CompileLowStockRule(getEnv("LOW_STOCK_RULE", reports.DefaultLowStockRule))
	if err != nil {
		return err
	}

	router := v1.NewRouter(v1.Config{
		Pool:            pool,
		TxManager:       txManager,
		JWT:             auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret)),
		Log:             log,
		LowStockRule:    rule,
		GlobalThreshold: types.NewQuantityFromInt(getEnvInt("LOW_STOCK_THRESHOLD", 10)),
	})

	srv := &http.Server{
		Addr:              ":" + getEnv("APP_PORT", "8080"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("missing required environment variable: " + key)
	}
	return v
}

func getEnvInt(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		panic("invalid " + key + ": " + raw)
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		panic("invalid " + key + ": " + raw)
	}
	return v
}
