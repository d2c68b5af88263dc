package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/noticenest/noticenest/internal/observability/metrics"
	"github.com/noticenest/noticenest/internal/ports"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// resolveTimeout bounds a single session lookup so a slow store cannot
// stall page loads.
const resolveTimeout = 5 * time.Second

// SessionResolverConfig groups dependencies for SessionResolver.
type SessionResolverConfig struct {
	Auth    AuthServiceInterface
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// SessionResolver returns a middleware that resolves the visitor's
// session exactly once per request and stores the resolved state in the
// request context. Every failure mode normalizes to anonymous: a
// missing cookie, an unknown or tampered token, an expired session, and
// a store error all yield the same resolved-anonymous state. Requests
// canceled mid-resolution are abandoned without publishing a state.
func SessionResolver(cfg SessionResolverConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := SessionState{Resolved: true}

			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" && cfg.Auth != nil {
				ctx, cancel := context.WithTimeout(r.Context(), resolveTimeout)
				session, getErr := cfg.Auth.GetSession(ctx, cookie.Value)
				cancel()

				switch {
				case getErr == nil:
					state.Session = session
					cfg.Metrics.IncrementSessionResolution("authenticated")
				case errors.Is(getErr, context.Canceled):
					// The client went away; nothing downstream will run,
					// so do not publish a state at all.
					return
				case errors.Is(getErr, ports.ErrNotFound):
					cfg.Metrics.IncrementSessionResolution("anonymous")
				default:
					// Store unavailable or similar. The visitor stays
					// anonymous rather than the error leaking a session.
					logger.WarnContext(r.Context(), "session resolution failed",
						slog.Any("error", getErr))
					cfg.Metrics.IncrementSessionResolution("error")
				}
			} else {
				cfg.Metrics.IncrementSessionResolution("anonymous")
			}

			next.ServeHTTP(w, r.WithContext(WithSessionState(r.Context(), state)))
		})
	}
}
