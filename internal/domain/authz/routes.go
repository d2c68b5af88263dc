package authz

import "strings"

// Route surface consumed by the route guard. Classification lives here,
// next to the policy, so handlers and middleware share one table.

var routeClasses = map[string]ResourceClass{
	"/":                ResourcePublic,
	"/auth/login":      ResourcePublic,
	"/auth/google":     ResourcePublic,
	"/auth/callback":   ResourcePublic,
	"/auth/session":    ResourcePublic,
	"/auth/renew":      ResourcePublic,
	"/auth/logout":     ResourcePublic,
	"/auth/signed-out": ResourcePublic,
	"/healthz":         ResourcePublic,
	"/metrics":         ResourcePublic,
	"/home":            ResourceResident,
	"/announcements":   ResourceResident,
	"/events":          ResourceResident,
	"/marketplace":     ResourceResident,
	"/admin":           ResourceAdmin,
}

// ClassifyRoute returns the resource class for a route path. Unknown
// paths classify as resident-only: an unlisted page is never rendered to
// an anonymous visitor by accident.
func ClassifyRoute(path string) ResourceClass {
	if class, ok := routeClasses[path]; ok {
		return class
	}
	if strings.HasPrefix(path, "/static/") {
		return ResourcePublic
	}
	return ResourceResident
}
