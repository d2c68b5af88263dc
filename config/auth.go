package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the external OAuth/OIDC identity provider.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses a config-driven dev identity (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains identity provider (OIDC) configuration.
type OAuthConfig struct {
	ClientID     string `env:"IDENTITY_PROVIDER_CLIENT_ID"`
	ClientSecret string `env:"IDENTITY_PROVIDER_CLIENT_SECRET"`
	RedirectURL  string `env:"IDENTITY_PROVIDER_REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"IDENTITY_PROVIDER_SCOPE"        envDefault:"openid profile email"`
	// Issuer is the OIDC issuer, used for endpoint discovery.
	Issuer string `env:"IDENTITY_PROVIDER_ISSUER" envDefault:"https://accounts.google.com"`
}

// DevAuthConfig controls the mock/dev identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev Resident"`
}

// SessionConfig groups session issuance settings.
type SessionConfig struct {
	// SigningSecret signs session tokens. Required outside dev mode.
	SigningSecret string `env:"SESSION_SIGNING_SECRET"`

	// TTL is the session lifetime. Sessions are renewed only by an
	// explicit renew call, never silently.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider adapter to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Session issuance configuration.
	Session SessionConfig

	// AdminEmail is the single configured admin address. Role derivation
	// compares against it with case-sensitive exact equality.
	AdminEmail string `env:"ADMIN_EMAIL,required"`

	// SignInRedirectPath is where unauthenticated visitors of protected
	// pages are sent.
	SignInRedirectPath string `env:"SIGN_IN_REDIRECT_PATH" envDefault:"/auth/login"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Session.TTL <= 0 {
		a.Session.TTL = 12 * time.Hour
	}
	if !strings.HasPrefix(a.SignInRedirectPath, "/") {
		a.SignInRedirectPath = "/auth/login"
	}
}
