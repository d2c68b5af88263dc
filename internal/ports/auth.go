package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
)

// BeginInput carries inputs for initiating an OAuth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an OAuth authentication flow
// against an identity provider.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the verified identity. Identities whose email the provider
	// has not verified are rejected.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// CredentialVerifier validates a username/password pair against the
// credential store. Verification failure is uniform: callers cannot
// distinguish an unknown user from a wrong password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (domainauth.Identity, error)
}

// SessionStore persists the mapping from opaque session tokens to
// verified identities. It is the sole owner and source of truth for
// sessions; everything else only holds read views.
type SessionStore interface {
	// Create issues a fresh token for the identity and persists the
	// session with the store's configured TTL.
	Create(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error)

	// Get returns the session for a token. Malformed tokens, unknown
	// tokens, and expired sessions all report ErrNotFound.
	Get(ctx context.Context, token string) (domainauth.Session, error)

	// Delete removes a session. Idempotent: deleting an absent session
	// is a no-op, not an error.
	Delete(ctx context.Context, token string) error

	// Renew extends the session's expiry by the TTL. Returns
	// ErrSessionExpired when the session is absent or already past
	// expiry; an expired session is never resurrected.
	Renew(ctx context.Context, token string) (domainauth.Session, error)
}
