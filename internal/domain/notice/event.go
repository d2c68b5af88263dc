package notice

import "strings"

// EventCategory groups community events by kind.
type EventCategory string

const (
	EventCelebration   EventCategory = "celebration"
	EventCommunity     EventCategory = "community"
	EventEnvironmental EventCategory = "environmental"
	EventSports        EventCategory = "sports"
	EventCultural      EventCategory = "cultural"
)

// RSVPStatus is the visitor's attendance state for an event.
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPMaybe        RSVPStatus = "maybe"
	RSVPNotAttending RSVPStatus = "not-attending"
)

// Event is one community event on the board. Date and Time stay as the
// display strings the board shows ("15th August", "8:00 AM"); there is
// no scheduling logic behind them.
type Event struct {
	ID           int
	Title        string
	Date         string
	Time         string
	Location     string
	Description  string
	Category     EventCategory
	Attendees    int
	MaxAttendees int
	IsPopular    bool
	Organizer    string
	RSVPStatus   RSVPStatus
}

// EventFilter holds the query-parameter filters for the events page.
type EventFilter struct {
	Search   string
	Category EventCategory
}

// Matches reports whether the event passes the filter.
func (e Event) Matches(f EventFilter) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Location), term) {
			return false
		}
	}
	return true
}

// Full reports whether the event has reached its attendee cap.
func (e Event) Full() bool {
	return e.MaxAttendees > 0 && e.Attendees >= e.MaxAttendees
}
