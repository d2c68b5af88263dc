package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/noticenest/noticenest/config"
	"github.com/noticenest/noticenest/internal/adapters/devauth"
	"github.com/noticenest/noticenest/internal/adapters/oidc"
	"github.com/noticenest/noticenest/internal/adapters/postgres"
	redisadapter "github.com/noticenest/noticenest/internal/adapters/redis"
	"github.com/noticenest/noticenest/internal/data"
	"github.com/noticenest/noticenest/internal/domain/authz"
	"github.com/noticenest/noticenest/internal/observability/metrics"
	"github.com/noticenest/noticenest/internal/ports"
	"github.com/noticenest/noticenest/internal/service"
)

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Board   *service.BoardService
	Policy  authz.Policy
	Metrics *metrics.Metrics
}

// ServiceDependencies contains the external dependencies services need.
type ServiceDependencies struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger

	// Metrics overrides the default-registry metrics; tests pass one
	// built on a fresh registry.
	Metrics *metrics.Metrics
}

// BuildServices wires adapters into services according to configuration.
func BuildServices(deps ServiceDependencies) (ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		return ServiceContainer{}, fmt.Errorf("config is required")
	}

	provider, err := buildAuthProvider(cfg)
	if err != nil {
		return ServiceContainer{}, err
	}

	sessions, err := buildSessionStore(cfg, deps.Redis)
	if err != nil {
		return ServiceContainer{}, err
	}

	var credentials ports.CredentialVerifier
	if deps.DB != nil {
		store, storeErr := postgres.NewCredentialStore(deps.DB)
		if storeErr != nil {
			return ServiceContainer{}, fmt.Errorf("build credential store: %w", storeErr)
		}
		credentials = store
	}

	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider:    provider,
			Sessions:    sessions,
			Credentials: credentials,
			Metrics:     m,
		}),
		Board:   service.NewBoardService(data.NewNoticeRepo()),
		Policy:  authz.NewPolicy(cfg.Auth.AdminEmail, cfg.Auth.SignInRedirectPath),
		Metrics: m,
	}, nil
}

// buildAuthProvider selects the identity provider adapter by AUTH_MODE.
//
//nolint:ireturn // callers depend on the port, not the adapter.
func buildAuthProvider(cfg *config.AppConfig) (ports.AuthProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		provider, err := devauth.NewProvider(devauth.Config{
			Email:       cfg.Auth.DevAuth.Email,
			DisplayName: cfg.Auth.DevAuth.DisplayName,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return provider, nil
	default:
		provider, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			RedirectURL:  cfg.Auth.OAuth.RedirectURL,
			Scope:        cfg.Auth.OAuth.Scope,
			Issuer:       cfg.Auth.OAuth.Issuer,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return provider, nil
	}
}

//nolint:ireturn // callers depend on the port, not the adapter.
func buildSessionStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.SessionStore, error) {
	secret := cfg.Auth.Session.SigningSecret
	if secret == "" && cfg.IsDev {
		// Dev convenience only; LoadConfig rejects this in production.
		secret = "dev-only-signing-secret"
	}

	store, err := redisadapter.NewSessionStore(client, redisadapter.Config{
		SigningSecret: secret,
		TTL:           cfg.Auth.Session.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build session store: %w", err)
	}
	return store, nil
}
