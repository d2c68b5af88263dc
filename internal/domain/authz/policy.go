package authz

// Package authz contains the pure authorization policy: role derivation
// and the per-resource access rules. No I/O, no clocks, no caching.

import (
	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
)

// Role represents the derived access level of a visitor.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleResident  Role = "resident"
	RoleAdmin     Role = "admin"
)

// RoleFor derives the role from an identity and the configured admin
// email. The admin match is case-sensitive exact string equality against
// exactly one address; there is no multi-admin list and no hierarchy
// beyond the two authenticated levels. A nil identity is anonymous.
func RoleFor(identity *domainauth.Identity, adminEmail string) Role {
	if identity == nil {
		return RoleAnonymous
	}
	if adminEmail != "" && identity.Email == adminEmail {
		return RoleAdmin
	}
	return RoleResident
}

// ResourceClass partitions the route surface by required access level.
type ResourceClass int

const (
	// ResourcePublic pages are reachable by everyone (landing, sign-in).
	ResourcePublic ResourceClass = iota
	// ResourceResident pages require any authenticated session.
	ResourceResident
	// ResourceAdmin pages require the admin role.
	ResourceAdmin
)

// DecisionKind enumerates the possible outcomes of a policy evaluation.
type DecisionKind int

const (
	// DecisionAllow renders the requested resource.
	DecisionAllow DecisionKind = iota
	// DecisionRedirect navigates to Decision.Target instead.
	DecisionRedirect
	// DecisionPending means the session state is not yet resolved;
	// callers must take no redirect action and render no protected
	// content until a resolved state is observed.
	DecisionPending
)

// Decision is the result of evaluating the policy for a (role, resource)
// pair.
type Decision struct {
	Kind   DecisionKind
	Target string // redirect target, set only for DecisionRedirect
}

// Allow is the decision that renders the resource.
var Allow = Decision{Kind: DecisionAllow}

// Pending is the decision used while session resolution is outstanding.
var Pending = Decision{Kind: DecisionPending}

// Redirect returns a redirect decision to the given target path.
func Redirect(target string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target}
}

// Policy is the single source of truth for access rules. It is injected
// wherever an authorization decision is needed; components never carry
// their own copy of the admin email.
type Policy struct {
	// AdminEmail is the one configured admin address.
	AdminEmail string
	// SignInPath is where anonymous visitors of resident pages are sent.
	SignInPath string
	// LandingPath is where non-admins visiting admin pages are sent.
	LandingPath string
}

// NewPolicy constructs a Policy with the default redirect targets.
func NewPolicy(adminEmail, signInPath string) Policy {
	if signInPath == "" {
		signInPath = "/auth/login"
	}
	return Policy{
		AdminEmail:  adminEmail,
		SignInPath:  signInPath,
		LandingPath: "/",
	}
}

// Evaluate applies the access rules:
//
//	resource        anonymous          resident           admin
//	public          allow              allow              allow
//	resident-only   redirect(login)    allow              allow
//	admin-only      redirect(landing)  redirect(landing)  allow
//
// It is pure and deterministic; the role must be derived fresh from the
// current identity by the caller (see RoleFor).
func (p Policy) Evaluate(role Role, resource ResourceClass) Decision {
	switch resource {
	case ResourcePublic:
		return Allow
	case ResourceResident:
		if role == RoleAnonymous {
			return Redirect(p.SignInPath)
		}
		return Allow
	case ResourceAdmin:
		if role == RoleAdmin {
			return Allow
		}
		return Redirect(p.LandingPath)
	default:
		// Unknown resource classes fail closed.
		return Redirect(p.LandingPath)
	}
}

// EvaluateIdentity derives the role from the identity and evaluates the
// policy in one step. This is the common entry point for the route guard.
func (p Policy) EvaluateIdentity(identity *domainauth.Identity, resource ResourceClass) Decision {
	return p.Evaluate(RoleFor(identity, p.AdminEmail), resource)
}
