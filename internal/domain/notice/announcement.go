package notice

// Package notice contains domain models for the board content:
// announcements, community events, and marketplace listings. Content is
// seeded from static data and read-only at runtime; search and category
// filtering happen over these models.

import (
	"strings"
	"time"
)

// Priority grades how urgent an announcement is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AnnouncementCategory groups announcements by topic.
type AnnouncementCategory string

const (
	CategoryMaintenance AnnouncementCategory = "maintenance"
	CategorySafety      AnnouncementCategory = "safety"
	CategoryGeneral     AnnouncementCategory = "general"
	CategoryEvent       AnnouncementCategory = "event"
)

// Announcement is one notice posted to the board.
type Announcement struct {
	ID          int
	Title       string
	Description string
	Date        time.Time
	Priority    Priority
	Category    AnnouncementCategory
	IsNew       bool
	Author      string
	ReadCount   int
}

// AnnouncementFilter holds the query-parameter filters for the
// announcements page. Zero values mean "no filter".
type AnnouncementFilter struct {
	Search   string
	Category AnnouncementCategory
	Priority Priority
}

// Matches reports whether the announcement passes the filter. The search
// term matches title or description, case-insensitively, mirroring the
// page's search box.
func (a Announcement) Matches(f AnnouncementFilter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.Description), term) {
			return false
		}
	}
	return true
}
