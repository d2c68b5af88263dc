package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/noticenest/noticenest/internal/domain/authz"
	"github.com/noticenest/noticenest/internal/observability/metrics"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GuardConfig groups dependencies for the route guard.
type GuardConfig struct {
	Policy  authz.Policy
	Metrics *metrics.Metrics
}

// Guard returns the route guard middleware. It classifies the request
// path, evaluates the access policy against the resolved session state,
// and either passes the request through or redirects. Protected content
// is never written for a request whose session state is not resolved;
// an unresolved state on a non-public route redirects to sign-in.
func Guard(cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resource := authz.ClassifyRoute(r.URL.Path)
			state := SessionStateFrom(r.Context())

			if !state.Resolved && resource != authz.ResourcePublic {
				// Resolver did not run; fail closed.
				cfg.Metrics.IncrementGuardDecision("redirect")
				redirectToSignIn(w, r, cfg.Policy.SignInPath)
				return
			}

			identity := IdentityFrom(r.Context())
			decision := cfg.Policy.EvaluateIdentity(identity, resource)

			switch decision.Kind {
			case authz.DecisionAllow:
				cfg.Metrics.IncrementGuardDecision("allow")
				next.ServeHTTP(w, r)
			case authz.DecisionRedirect:
				cfg.Metrics.IncrementGuardDecision("redirect")
				if decision.Target == cfg.Policy.SignInPath {
					redirectToSignIn(w, r, cfg.Policy.SignInPath)
					return
				}
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			default:
				// Pending or unknown kinds never render content.
				cfg.Metrics.IncrementGuardDecision("redirect")
				redirectToSignIn(w, r, cfg.Policy.SignInPath)
			}
		})
	}
}

// redirectToSignIn sends the visitor to the sign-in page, carrying the
// current path so sign-in can return them where they were headed.
func redirectToSignIn(w http.ResponseWriter, r *http.Request, signInPath string) {
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	target := signInPath
	if redirectPath != "/" {
		target += "?redirect_uri=" + url.QueryEscape(redirectPath)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin
// relative path starting with "/" and not an absolute URL. Returns "/"
// when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	if strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}
