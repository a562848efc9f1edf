package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gelaboca/gelaboca-backend/api/responses"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ChatRateLimit throttles assistant messages per session with a fixed window.
// A failing limiter store lets traffic through; the assistant degrading is
// worse than a chatty table.
func ChatRateLimit(store rateLimiterStore, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || limit <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := SessionIDFromContext(ctx)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			scope := fmt.Sprintf("chat:%s", sessionID)
			allowed, count, err := store.FixedWindowAllow(ctx, scope, limit, window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate limit check failed, allowing request")
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "count", count), "chat rate limit exceeded")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many messages, slow down a little"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
