package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/noticenest/noticenest/internal/domain/authz"
	"github.com/noticenest/noticenest/internal/domain/notice"
	"github.com/noticenest/noticenest/internal/service"
)

// UIHandlers renders the notice board pages.
type UIHandlers struct {
	Board    *service.BoardService
	Policy   authz.Policy
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) pageData(r *http.Request, title, current string, data any) PageData {
	return PageData{
		Title:       title,
		CurrentPage: current,
		CSRFToken:   CSRFTokenFrom(r.Context()),
		Viewer:      viewerFrom(r.Context(), h.Policy),
		Data:        data,
	}
}

func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	if err := h.Renderer.RenderPage(w, name, data); err != nil {
		h.logger().ErrorContext(r.Context(), "page render failed",
			slog.String("template", name), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Landing renders the public landing page.
// GET /.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	// The mux treats "/" as a catch-all; everything else is a 404 here
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	h.render(w, r, "landing-page", h.pageData(r, "NoticeNest - Your Community Hub", "landing", nil))
}

// Home renders the resident home page with board highlights.
// GET /home.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	announcements, events, err := h.Board.Highlights(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load highlights failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "home-page", h.pageData(r, "Home - NoticeNest", "home", map[string]any{
		"Announcements": announcements,
		"Events":        events,
	}))
}

// Announcements renders the announcements page with filters.
// GET /announcements?q=<search>&category=<category>&priority=<priority>.
func (h *UIHandlers) Announcements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := notice.AnnouncementFilter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: notice.AnnouncementCategory(q.Get("category")),
		Priority: notice.Priority(q.Get("priority")),
	}

	announcements, err := h.Board.Announcements(r.Context(), filter)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list announcements failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "announcements-page", h.pageData(r, "Announcements - NoticeNest", "announcements", map[string]any{
		"Announcements": announcements,
		"Filter":        filter,
	}))
}

// Events renders the community events page with filters.
// GET /events?q=<search>&category=<category>.
func (h *UIHandlers) Events(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := notice.EventFilter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: notice.EventCategory(q.Get("category")),
	}

	events, err := h.Board.Events(r.Context(), filter)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list events failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "events-page", h.pageData(r, "Events - NoticeNest", "events", map[string]any{
		"Events": events,
		"Filter": filter,
	}))
}

// Marketplace renders the marketplace page with filters.
// GET /marketplace?q=<search>&type=<type>.
func (h *UIHandlers) Marketplace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := notice.ListingFilter{
		Search: strings.TrimSpace(q.Get("q")),
		Type:   notice.ListingType(q.Get("type")),
	}

	listings, err := h.Board.Listings(r.Context(), filter)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list marketplace failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "marketplace-page", h.pageData(r, "Marketplace - NoticeNest", "marketplace", map[string]any{
		"Listings": listings,
		"Filter":   filter,
	}))
}

// Admin renders the community management page.
// GET /admin.
func (h *UIHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.Board.Announcements(r.Context(), notice.AnnouncementFilter{})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load admin data failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "admin-page", h.pageData(r, "Admin - NoticeNest", "admin", map[string]any{
		"Announcements": announcements,
	}))
}

// SignedOut renders the post-logout page.
// GET /auth/signed-out.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "signed-out-page", h.pageData(r, "Signed Out - NoticeNest", "signed-out", nil))
}

// NotFound renders the 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, "Page Not Found - NoticeNest", "not-found", map[string]any{
		"Path": r.URL.Path,
	})
	if err := h.Renderer.RenderPageStatus(w, http.StatusNotFound, "not-found-page", data); err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
