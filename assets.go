// Package noticenest provides embedded assets for production builds.
package noticenest

import "embed"

// Embedded HTML templates for the server-rendered UI.
// In dev mode (IsDev=true), templates are loaded from disk for hot reloading.

//go:embed all:web/templates
var TemplateFS embed.FS

// Embedded static assets (stylesheets).
//
//go:embed all:web/static
var StaticFS embed.FS
