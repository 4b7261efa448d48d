package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/catalog-admin/api/routes"
	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/pkg/config"
	"github.com/angelmondragon/catalog-admin/pkg/instance"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-admin-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-admin-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(runCtx, cfg, logg, app.WithNoticeLogging())
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	// the catalog may still be starting; the dashboards can be refreshed later
	if err := application.Warm(runCtx); err != nil {
		logg.Warn(logg.WithField(runCtx, "error", err.Error()), "initial catalog load failed")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"catalog":  cfg.API.BaseURL,
	})
	logg.Info(ctx, "starting catalog admin api")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(application),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
