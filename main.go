package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chleo-smith/consent-gateway/internal/config"
	"github.com/chleo-smith/consent-gateway/internal/infra"
	"github.com/chleo-smith/consent-gateway/internal/store"
)

const redisConnectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to build config - %s", err)
	}

	st, err := store.Load(cfg.MockDBFile)
	if err != nil {
		logrus.Warnf("mock store unavailable, fallback requests will fail - %s", err)
		st = store.Uninitialized(cfg.MockDBFile)
	}

	var redisClient *redis.Client
	if cfg.RedisCfg.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		redisClient, err = infra.Redis(ctx, cfg.RedisCfg)
		cancel()
		if err != nil {
			logrus.Warnf("customer cache unavailable, continuing without it - %s", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	app, err := infra.Router(cfg, st, redisClient)
	if err != nil {
		logrus.Fatalf("failed to build router - %s", err)
	}

	start(app, cfg)
}

func start(app *echo.Echo, cfg config.Config) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
