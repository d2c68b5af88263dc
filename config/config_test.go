package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected AuthMode
		wantErr  bool
	}{
		{"oauth", AuthModeOAuth, false},
		{"mock", AuthModeMock, false},
		{"OAuth", AuthModeOAuth, false},
		{"MOCK", AuthModeMock, false},
		{"saml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		Session:            SessionConfig{TTL: -1},
		SignInRedirectPath: "oops",
	}
	cfg.Sanitize()

	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "/auth/login", cfg.SignInRedirectPath)
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "Development")

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestAppConfig_DevFlagWins(t *testing.T) {
	t.Setenv("NODE_ENV", "production")

	cfg := AppConfig{IsDev: true}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
