package controllers

import (
	"context"
	"net/http"

	"github.com/gelaboca/gelaboca-backend/api/responses"
	"github.com/gelaboca/gelaboca-backend/pkg/config"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

const envHeader = "X-GelaBoca-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the service's dependencies are reachable. A nil pinger
// marks that dependency as skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, indexP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]pinger{
			"db":    dbP,
			"redis": redisP,
			"index": indexP,
		}

		status := map[string]string{}
		healthy := true
		for name, dep := range checks {
			if dep == nil {
				status[name] = "skipped"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				status[name] = "down"
				healthy = false
				if logg != nil {
					ctx := logg.WithField(r.Context(), "dependency", name)
					logg.Error(ctx, "readiness check failed", err)
				}
				continue
			}
			status[name] = "up"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(status)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": status})
	}
}
