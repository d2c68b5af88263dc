package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
)

const adminEmail = "admin@example.com"

func identity(email string) *domainauth.Identity {
	return &domainauth.Identity{Email: email, Provider: domainauth.ProviderGoogle}
}

func TestRoleFor(t *testing.T) {
	tests := []struct {
		name     string
		identity *domainauth.Identity
		expected Role
	}{
		{"nil identity is anonymous", nil, RoleAnonymous},
		{"admin email matches exactly", identity("admin@example.com"), RoleAdmin},
		{"other email is resident", identity("resident@example.com"), RoleResident},
		{"match is case-sensitive", identity("Admin@example.com"), RoleResident},
		{"no whitespace normalization", identity(" admin@example.com"), RoleResident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoleFor(tt.identity, adminEmail))
		})
	}
}

func TestRoleFor_EmptyAdminEmail(t *testing.T) {
	// A blank ADMIN_EMAIL must not quietly promote identities with a
	// blank email claim.
	assert.Equal(t, RoleResident, RoleFor(identity(""), ""))
}

func TestPolicy_Evaluate_Table(t *testing.T) {
	p := NewPolicy(adminEmail, "/auth/login")

	tests := []struct {
		name     string
		role     Role
		resource ResourceClass
		expected Decision
	}{
		{"public allows anonymous", RoleAnonymous, ResourcePublic, Allow},
		{"public allows resident", RoleResident, ResourcePublic, Allow},
		{"public allows admin", RoleAdmin, ResourcePublic, Allow},
		{"resident page redirects anonymous to login", RoleAnonymous, ResourceResident, Redirect("/auth/login")},
		{"resident page allows resident", RoleResident, ResourceResident, Allow},
		{"resident page allows admin", RoleAdmin, ResourceResident, Allow},
		{"admin page redirects anonymous to landing", RoleAnonymous, ResourceAdmin, Redirect("/")},
		{"admin page redirects resident to landing", RoleResident, ResourceAdmin, Redirect("/")},
		{"admin page allows admin", RoleAdmin, ResourceAdmin, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Evaluate(tt.role, tt.resource))
		})
	}
}

func TestPolicy_AdminAllowIffExactEmail(t *testing.T) {
	p := NewPolicy(adminEmail, "/auth/login")

	for _, email := range []string{
		"admin@example.com",
		"resident@example.com",
		"ADMIN@EXAMPLE.COM",
		"admin@example.com ",
	} {
		decision := p.EvaluateIdentity(identity(email), ResourceAdmin)
		if email == adminEmail {
			assert.Equal(t, Allow, decision, "email %q", email)
		} else {
			assert.Equal(t, Redirect("/"), decision, "email %q", email)
		}
	}
}

func TestPolicy_UnknownResourceFailsClosed(t *testing.T) {
	p := NewPolicy(adminEmail, "/auth/login")
	decision := p.Evaluate(RoleAdmin, ResourceClass(99))
	assert.Equal(t, DecisionRedirect, decision.Kind)
}

func TestClassifyRoute(t *testing.T) {
	assert.Equal(t, ResourcePublic, ClassifyRoute("/"))
	assert.Equal(t, ResourcePublic, ClassifyRoute("/auth/login"))
	assert.Equal(t, ResourcePublic, ClassifyRoute("/auth/callback"))
	assert.Equal(t, ResourcePublic, ClassifyRoute("/static/css/app.css"))
	assert.Equal(t, ResourceResident, ClassifyRoute("/announcements"))
	assert.Equal(t, ResourceResident, ClassifyRoute("/events"))
	assert.Equal(t, ResourceResident, ClassifyRoute("/marketplace"))
	assert.Equal(t, ResourceAdmin, ClassifyRoute("/admin"))
	// Unlisted paths are never public.
	assert.Equal(t, ResourceResident, ClassifyRoute("/not-a-page"))
}
