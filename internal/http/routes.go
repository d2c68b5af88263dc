package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	noticenest "github.com/noticenest/noticenest"
	"github.com/noticenest/noticenest/internal/domain/authz"
	"github.com/noticenest/noticenest/internal/observability/metrics"
	"github.com/noticenest/noticenest/internal/service"
)

// TemplatePathFromRoot is the on-disk template directory used in dev mode.
const TemplatePathFromRoot = "web/templates"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Board        *service.BoardService
	Policy       authz.Policy
	CookieDomain string
	CallbackURL  string
	IsDev        bool             // Development mode flag for on-disk templates
	Logger       *slog.Logger     // Logger for template and HTTP errors (optional)
	Metrics      *metrics.Metrics // Optional; nil disables counters
}

// NewRouter creates and configures the HTTP router with the full
// middleware chain: request logging, panic recovery, CSRF protection,
// session resolution, and the route guard.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	renderer := setupRenderer(services.IsDev, logger)

	var authSvc AuthServiceInterface
	if services.Auth != nil {
		authSvc = services.Auth
	}

	if authSvc != nil {
		authHandlers := &AuthHandlers{
			Svc:          authSvc,
			Policy:       services.Policy,
			Renderer:     renderer,
			CookieDomain: services.CookieDomain,
			CallbackURL:  services.CallbackURL,
			Logger:       logger,
		}
		registerAuthRoutes(mux, authHandlers)
	}

	uiHandlers := &UIHandlers{
		Board:    services.Board,
		Policy:   services.Policy,
		Renderer: renderer,
		Logger:   logger,
	}
	registerPageRoutes(mux, uiHandlers)

	// Static assets: disk in dev mode for hot reloading, embedded FS in
	// production.
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler(services.IsDev)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = Guard(GuardConfig{Policy: services.Policy, Metrics: services.Metrics})(handler)
	handler = SessionResolver(SessionResolverConfig{
		Auth:    authSvc,
		Logger:  logger,
		Metrics: services.Metrics,
	})(handler)
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.LoginPage)
	mux.HandleFunc("POST /auth/login", h.PasswordLogin)
	mux.HandleFunc("GET /auth/google", h.BeginOAuth)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("GET /auth/session", h.Status)
	mux.HandleFunc("POST /auth/renew", h.Renew)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

func registerPageRoutes(mux *http.ServeMux, h *UIHandlers) {
	// "GET /" is the catch-all; Landing renders the 404 page for paths
	// it does not recognize.
	mux.HandleFunc("GET /", h.Landing)
	mux.HandleFunc("GET /home", h.Home)
	mux.HandleFunc("GET /announcements", h.Announcements)
	mux.HandleFunc("GET /events", h.Events)
	mux.HandleFunc("GET /marketplace", h.Marketplace)
	mux.HandleFunc("GET /admin", h.Admin)
	mux.HandleFunc("GET /auth/signed-out", h.SignedOut)
}

func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.FileServer(http.Dir("web/static"))
	}
	sub, err := fs.Sub(noticenest.StaticFS, "web/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v; falling back to disk", err)
		return http.FileServer(http.Dir("web/static"))
	}
	return http.FileServer(http.FS(sub))
}

// setupRenderer builds the template renderer. Dev mode reads templates
// from disk so edits show up on restart; production parses the embedded
// filesystem.
func setupRenderer(isDev bool, logger *slog.Logger) *TemplateRenderer {
	var templateFS fs.FS
	if isDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(noticenest.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     logger,
	})
	if err != nil {
		// Pages cannot render without templates; fail loudly at startup.
		log.Fatalf("failed to initialize template renderer: %v", err)
	}
	return renderer
}
