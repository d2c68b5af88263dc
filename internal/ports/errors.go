package ports

// Sentinel errors shared across the auth ports. Adapters return these
// (possibly wrapped); callers match with errors.Is.

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

const (
	// ErrNotFound reports an absent session. Lookups fail closed: a
	// malformed token, an unknown token, and an expired session are all
	// indistinguishable to the caller.
	ErrNotFound = sentinelError("session not found")

	// ErrSessionExpired reports a renew attempt on a session already
	// past expiry.
	ErrSessionExpired = sentinelError("session expired")

	// ErrInvalidCredentials is the uniform credentials failure. It never
	// reveals whether the user exists or the password was wrong.
	ErrInvalidCredentials = sentinelError("invalid credentials")
)
