package httpx

import (
	"context"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
)

// sessionStateKey is an unexported context key type to avoid collisions
// across packages. Centralized here so all handlers and middleware use
// the same key.
type sessionStateKey struct{}

// SessionState is the per-request view of the visitor's session. Until
// the resolver has run, state is unresolved and every consumer must
// treat the visitor as unknown, not as signed out. Once resolved,
// Session is either the live session or nil for an anonymous visitor.
type SessionState struct {
	Resolved bool
	Session  *domainauth.Session
}

// WithSessionState returns a child context carrying the given state.
func WithSessionState(ctx context.Context, state SessionState) context.Context {
	return context.WithValue(ctx, sessionStateKey{}, state)
}

// SessionStateFrom returns the session state from the context. A
// request the resolver never saw reports an unresolved state.
func SessionStateFrom(ctx context.Context) SessionState {
	if state, ok := ctx.Value(sessionStateKey{}).(SessionState); ok {
		return state
	}
	return SessionState{}
}

// SessionFrom returns the resolved session, or nil for anonymous and
// unresolved requests.
func SessionFrom(ctx context.Context) *domainauth.Session {
	state := SessionStateFrom(ctx)
	if !state.Resolved {
		return nil
	}
	return state.Session
}

// IdentityFrom returns the resolved identity, or nil.
func IdentityFrom(ctx context.Context) *domainauth.Identity {
	if s := SessionFrom(ctx); s != nil {
		return &s.Identity
	}
	return nil
}

// IsAuthenticated reports whether the request has a resolved, live
// session.
func IsAuthenticated(ctx context.Context) bool {
	return SessionFrom(ctx) != nil
}
