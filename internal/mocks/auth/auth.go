package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider       = (*MockAuthProvider)(nil)
	_ ports.SessionStore       = (*MemorySessionStore)(nil)
	_ ports.CredentialVerifier = (*MockCredentialVerifier)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			Email:       "mock.user@example.com",
			DisplayName: "Mock User",
			Provider:    domainauth.ProviderGoogle,
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	user := m.DefaultUser
	if user.Email == "" {
		user = domainauth.Identity{
			Email:       "mock.user@example.com",
			DisplayName: "Mock User",
			Provider:    domainauth.ProviderGoogle,
		}
	}
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
// Tokens are sequential and unsigned; only the real store cares about
// signatures.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
	TTL      time.Duration // default 30m when zero
	Now      func() time.Time

	nextID int
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MemorySessionStore) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return 30 * time.Minute
}

func (m *MemorySessionStore) Create(_ context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	m.nextID++
	now := m.now()
	sess := domainauth.Session{
		Token:     fmt.Sprintf("session-%d", m.nextID),
		Identity:  identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl()),
	}
	m.sessions[sess.Token] = sess
	return sess, nil
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (domainauth.Session, error) {
	sess, ok := m.sessions[token]
	if !ok {
		return domainauth.Session{}, ports.ErrNotFound
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, token)
		return domainauth.Session{}, ports.ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *MemorySessionStore) Renew(_ context.Context, token string) (domainauth.Session, error) {
	sess, ok := m.sessions[token]
	if !ok || sess.Expired(m.now()) {
		return domainauth.Session{}, ports.ErrSessionExpired
	}
	sess.ExpiresAt = m.now().Add(m.ttl())
	m.sessions[token] = sess
	return sess, nil
}

// Len reports the number of live sessions, for assertions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// MockCredentialVerifier verifies against a fixed username/password
// pair, or delegates to VerifyFunc when set.
type MockCredentialVerifier struct {
	VerifyFunc func(ctx context.Context, username, password string) (domainauth.Identity, error)

	Username string
	Password string
	Identity domainauth.Identity
}

func (m *MockCredentialVerifier) Verify(ctx context.Context, username, password string) (domainauth.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, username, password)
	}
	if username != m.Username || password != m.Password {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}
	id := m.Identity
	if id.Email == "" {
		id = domainauth.Identity{
			Email:       "resident@example.com",
			DisplayName: "Resident",
			Provider:    domainauth.ProviderCredentials,
		}
	}
	return id, nil
}
