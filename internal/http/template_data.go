package httpx

import (
	"context"

	"github.com/noticenest/noticenest/internal/domain/authz"
)

// Viewer is the template-facing view of the visitor, driving the navbar
// and any per-role affordances. It is derived fresh per request from
// the resolved session state.
type Viewer struct {
	Authenticated bool
	DisplayName   string
	FirstName     string
	Email         string
	IsAdmin       bool
}

// PageData is the common payload handed to page templates.
type PageData struct {
	Title       string
	CurrentPage string
	CSRFToken   string
	Viewer      Viewer
	Data        any
}

// viewerFrom builds the template viewer for the current request.
func viewerFrom(ctx context.Context, policy authz.Policy) Viewer {
	identity := IdentityFrom(ctx)
	if identity == nil {
		return Viewer{}
	}
	return Viewer{
		Authenticated: true,
		DisplayName:   identity.DisplayName,
		FirstName:     identity.FirstName(),
		Email:         identity.Email,
		IsAdmin:       authz.RoleFor(identity, policy.AdminEmail) == authz.RoleAdmin,
	}
}
