package auth

// Package auth contains domain-level types for identity and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Provider identifies which identity provider verified an Identity.
type Provider string

const (
	ProviderGoogle      Provider = "google"
	ProviderCredentials Provider = "credentials"
)

// Identity represents a verified end user. An Identity exists only after
// a successful verification by an identity provider adapter; UI code
// never constructs one ad hoc.
type Identity struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name,omitempty"`
	Provider    Provider `json:"provider"`
}

// FirstName returns the leading word of the display name, used for the
// navbar greeting. Falls back to "Resident" when no name is known.
func (i Identity) FirstName() string {
	for idx := 0; idx < len(i.DisplayName); idx++ {
		if i.DisplayName[idx] == ' ' {
			return i.DisplayName[:idx]
		}
	}
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return "Resident"
}

// Session is the server-side record persisted for an authenticated user.
// Token is opaque and server-issued; its format is owned entirely by the
// session store. The Role is deliberately not stored here: it is derived
// fresh from the Identity on every policy evaluation.
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
