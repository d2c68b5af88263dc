package devauth

import (
	"context"
	"strings"
	"testing"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
)

func TestProvider_BeginAndExchange(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com", DisplayName: "Dev Resident"})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	url, state, nonce, err := prov.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if !strings.HasPrefix(url, "/auth/callback?") {
		t.Fatalf("unexpected authURL: %s", url)
	}
	if state == "" || nonce == "" {
		t.Fatal("state and nonce should be generated")
	}
	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.Email != "dev@example.com" || id.DisplayName != "Dev Resident" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Provider != domainauth.ProviderGoogle {
		t.Fatalf("unexpected provider: %s", id.Provider)
	}
}

func TestNewProvider_RequiresEmail(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestNewProvider_DisplayNameDefaultsToEmail(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: "s", Nonce: "n"})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.DisplayName != "dev@example.com" {
		t.Fatalf("unexpected display name: %s", id.DisplayName)
	}
}
