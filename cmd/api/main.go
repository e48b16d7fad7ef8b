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

	"github.com/GoSim-25-26J-441/portfolio-api/config"
	httpapi "github.com/GoSim-25-26J-441/portfolio-api/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/logging"
)

const serviceName = "portfolio-api"

func main() {
	if err := run(); err != nil {
		logging.L().WithError(err).Error("application error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.Init(cfg.App.LogLevel, cfg.App.LogFormat)
	bootstrap.SetGinMode(cfg.App.Environment)

	store := bootstrap.OpenStore(context.Background(), bootstrap.DBOptions{
		URI:       cfg.Database.URL,
		Name:      cfg.Database.Name,
		ConnectTO: cfg.Database.ConnectTimeout,
	}, log)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.WithError(err).Warn("document store disconnect failed")
		}
	}()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Store:       store,
		Env: httpapi.EnvStatus{
			DatabaseURLSet:  cfg.Database.URLSet(),
			DatabaseNameSet: cfg.Database.NameSet(),
		},
		AllowOrigins: cfg.CORS.AllowOrigins,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
