package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/cmd"
	httpin "warehouse/internal/adapters/in/http"
	postgres_adapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(configs.Log)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(configs, zlog); err != nil {
		zlog.Fatal("warehouse stopped", zap.Error(err))
	}
}

func run(configs cmd.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := postgres_adapter.Open(
		configs.DSN(),
		postgres_adapter.PoolConfig{
			MaxOpenConns:    configs.DBMaxOpenConns,
			MaxIdleConns:    configs.DBMaxIdleConns,
			ConnMaxLifetime: configs.DBConnMaxLifetime,
		},
		logger.NewGormLogger(zlog, logger.GormLevel(configs.DBLogLevel), logger.WithSlowThreshold(configs.DBSlowQuery)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(database.DB, zlog)
	e, err := httpin.NewRouter(ctx, httpin.NewServer(app.Handlers()), httpin.RouterConfig{
		JWTSecret: []byte(configs.JWTSecret),
		Logger:    zlog,
		Health:    database.Ping,
	})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.WARN)

	return startWebServer(ctx, e, configs.HTTPPort, zlog)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, zlog *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("http server listening", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
