package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/catalog-admin/api/responses"
	"github.com/angelmondragon/catalog-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/redis"
)

const (
	envHeader    = "X-Catalog-Env"
	readyTimeout = 2 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the category cache when one is configured. cache may be nil.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		checks := map[string]string{"cache": "disabled"}
		if cache != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready").
					WithDetails(map[string]string{"cache": "down"}))
				return
			}
			checks["cache"] = "ok"
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
