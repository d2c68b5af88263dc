package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/observability/metrics"
	"github.com/noticenest/noticenest/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService. Credentials
// and Metrics are optional.
type AuthServiceOptions struct {
	Provider    ports.AuthProvider
	Sessions    ports.SessionStore
	Credentials ports.CredentialVerifier
	Metrics     *metrics.Metrics
}

// AuthService orchestrates sign-in flows by coordinating the identity
// provider, credential verification, and session persistence.
type AuthService struct {
	provider    ports.AuthProvider
	sessions    ports.SessionStore
	credentials ports.CredentialVerifier
	metrics     *metrics.Metrics
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider:    opts.Provider,
		sessions:    opts.Sessions,
		credentials: opts.Credentials,
		metrics:     opts.Metrics,
	}
}

// BeginLoginResult contains the result of beginning a sign-in flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates the provider sign-in flow and returns the auth
// URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a sign-in flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a sign-in flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin finishes the provider flow by exchanging the code for
// an identity and persisting a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		s.metrics.IncrementSignIn(string(domainauth.ProviderGoogle), "failure")
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	session, err := s.sessions.Create(ctx, identity)
	if err != nil {
		s.metrics.IncrementSignIn(string(identity.Provider), "failure")
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.metrics.IncrementSignIn(string(identity.Provider), "success")
	return &CompleteLoginResult{Session: session}, nil
}

// PasswordLogin verifies a username/password pair and persists a
// session on success. All verification failures surface as
// ports.ErrInvalidCredentials; callers must not leak anything more
// specific to the client.
func (s *AuthService) PasswordLogin(ctx context.Context, username, password string) (*CompleteLoginResult, error) {
	if s.credentials == nil {
		return nil, errors.New("password sign-in is not configured")
	}

	identity, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		s.metrics.IncrementSignIn(string(domainauth.ProviderCredentials), "failure")
		if errors.Is(err, ports.ErrInvalidCredentials) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	session, err := s.sessions.Create(ctx, identity)
	if err != nil {
		s.metrics.IncrementSignIn(string(identity.Provider), "failure")
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.metrics.IncrementSignIn(string(identity.Provider), "success")
	return &CompleteLoginResult{Session: session}, nil
}

// GetSession retrieves a session by token. Unknown, tampered, and
// expired tokens all report ports.ErrNotFound.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, ports.ErrNotFound
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &session, nil
}

// RenewSession extends a live session's expiry. A session past its
// expiry cannot be renewed and reports ports.ErrSessionExpired.
func (s *AuthService) RenewSession(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, ports.ErrSessionExpired
	}

	session, err := s.sessions.Renew(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrSessionExpired) {
			return nil, ports.ErrSessionExpired
		}
		return nil, fmt.Errorf("renew session: %w", err)
	}

	return &session, nil
}

// Logout removes a session. Logging out an unknown or already-removed
// token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
