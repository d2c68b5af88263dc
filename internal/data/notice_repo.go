// Package data provides the notice board repositories. Content is
// seeded in memory; a later release moves it to Postgres alongside the
// residents table.
package data

import (
	"context"
	"sort"
	"time"

	"github.com/noticenest/noticenest/internal/domain/notice"
)

// NoticeRepo serves announcements, events, and marketplace listings.
// The seeded slices are never mutated after construction, so reads need
// no locking.
type NoticeRepo struct {
	announcements []notice.Announcement
	events        []notice.Event
	listings      []notice.Listing
}

// NewNoticeRepo creates a repository with the community seed content.
func NewNoticeRepo() *NoticeRepo {
	return &NoticeRepo{
		announcements: seedAnnouncements(),
		events:        seedEvents(),
		listings:      seedListings(),
	}
}

// ListAnnouncements returns announcements matching the filter, newest
// first.
func (r *NoticeRepo) ListAnnouncements(_ context.Context, filter notice.AnnouncementFilter) ([]notice.Announcement, error) {
	out := make([]notice.Announcement, 0, len(r.announcements))
	for _, a := range r.announcements {
		if a.Matches(filter) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListEvents returns events matching the filter in seeded order.
func (r *NoticeRepo) ListEvents(_ context.Context, filter notice.EventFilter) ([]notice.Event, error) {
	out := make([]notice.Event, 0, len(r.events))
	for _, e := range r.events {
		if e.Matches(filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListListings returns marketplace listings matching the filter in
// seeded order.
func (r *NoticeRepo) ListListings(_ context.Context, filter notice.ListingFilter) ([]notice.Listing, error) {
	out := make([]notice.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if l.Matches(filter) {
			out = append(out, l)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedAnnouncements() []notice.Announcement {
	return []notice.Announcement{
		{
			ID:          1,
			Title:       "Emergency Water Supply Maintenance",
			Description: "Water supply will be interrupted on Sunday from 8 AM to 12 PM due to emergency maintenance work on the main pipeline. Please store water in advance. Alternative water tanker will be arranged if needed.",
			Date:        day(2025, time.August, 5),
			Priority:    notice.PriorityHigh,
			Category:    notice.CategoryMaintenance,
			IsNew:       true,
			Author:      "Maintenance Team",
			ReadCount:   45,
		},
		{
			ID:          2,
			Title:       "Mandatory Fire Safety Drill",
			Description: "A comprehensive fire safety drill will be conducted on Monday at 10 AM. All residents must participate. Fire exits will be tested and evacuation procedures will be practiced.",
			Date:        day(2025, time.August, 3),
			Priority:    notice.PriorityHigh,
			Category:    notice.CategorySafety,
			IsNew:       true,
			Author:      "Safety Committee",
			ReadCount:   67,
		},
		{
			ID:          3,
			Title:       "New Security Agency Transition",
			Description: "A new security agency 'SecureGuard Solutions' will take over from next week. Please cooperate during the transition period and update your visitor passes accordingly.",
			Date:        day(2025, time.August, 1),
			Priority:    notice.PriorityMedium,
			Category:    notice.CategoryGeneral,
			Author:      "Management",
			ReadCount:   89,
		},
		{
			ID:          4,
			Title:       "Community Diwali Celebration 2024",
			Description: "Join us for the annual Diwali celebration in the community hall on November 12th at 7 PM. Cultural performances, dinner, and fireworks display planned. Registration required.",
			Date:        day(2025, time.July, 28),
			Priority:    notice.PriorityLow,
			Category:    notice.CategoryEvent,
			Author:      "Cultural Committee",
			ReadCount:   156,
		},
		{
			ID:          5,
			Title:       "Parking Rules Update",
			Description: "New parking guidelines are now in effect. Visitor parking is limited to 4 hours. Long-term violations will result in towing. Please display parking permits clearly.",
			Date:        day(2025, time.July, 25),
			Priority:    notice.PriorityMedium,
			Category:    notice.CategoryGeneral,
			Author:      "Parking Committee",
			ReadCount:   234,
		},
	}
}

func seedEvents() []notice.Event {
	return []notice.Event{
		{
			ID:           1,
			Title:        "Independence Day Celebration",
			Date:         "15th August",
			Time:         "8:00 AM",
			Location:     "Community Park",
			Description:  "Flag hoisting, cultural performances, and breakfast for all residents. Come celebrate our nation's independence with patriotic fervor and community spirit.",
			Category:     notice.EventCelebration,
			Attendees:    156,
			MaxAttendees: 200,
			IsPopular:    true,
			Organizer:    "Cultural Committee",
			RSVPStatus:   notice.RSVPAttending,
		},
		{
			ID:           2,
			Title:        "Weekend Clean-Up Drive",
			Date:         "10th August",
			Time:         "7:00 AM",
			Location:     "Near Main Gate",
			Description:  "Join hands to keep our society clean and green. Gloves, bags, and refreshments will be provided. Let's make our community beautiful together!",
			Category:     notice.EventCommunity,
			Attendees:    89,
			MaxAttendees: 100,
			Organizer:    "Green Committee",
			RSVPStatus:   notice.RSVPMaybe,
		},
		{
			ID:           3,
			Title:        "Monsoon Tree Plantation",
			Date:         "18th August",
			Time:         "9:00 AM",
			Location:     "Children's Play Area",
			Description:  "Plant a tree and make a difference! Open for all age groups. Each family will receive a sapling to plant and nurture. Creating a greener tomorrow starts today.",
			Category:     notice.EventEnvironmental,
			Attendees:    67,
			MaxAttendees: 80,
			IsPopular:    true,
			Organizer:    "Environment Club",
			RSVPStatus:   notice.RSVPAttending,
		},
		{
			ID:           4,
			Title:        "Summer Sports Tournament",
			Date:         "22nd August",
			Time:         "5:00 PM",
			Location:     "Community Sports Ground",
			Description:  "Annual sports tournament featuring badminton, table tennis, and swimming competitions. Prizes for winners and participation certificates for all.",
			Category:     notice.EventSports,
			Attendees:    45,
			MaxAttendees: 60,
			Organizer:    "Sports Committee",
		},
		{
			ID:           5,
			Title:        "Classical Music Evening",
			Date:         "25th August",
			Time:         "7:00 PM",
			Location:     "Community Hall",
			Description:  "An enchanting evening of classical music featuring renowned artists from the city. Experience the beauty of traditional melodies in an intimate setting.",
			Category:     notice.EventCultural,
			Attendees:    78,
			MaxAttendees: 120,
			IsPopular:    true,
			Organizer:    "Arts & Culture Society",
		},
	}
}

func seedListings() []notice.Listing {
	return []notice.Listing{
		{
			ID:          "5f0c3a74-1f4a-4a5d-9a37-2f1f0c3a74aa",
			Title:       "Mountain Bike - Excellent Condition",
			Price:       "₹2,000",
			Type:        notice.ListingSell,
			Seller:      "Rahul Kumar",
			Location:    "Flat 102, A Block",
			Contact:     notice.Contact{Phone: "+91 98765 43210", Email: "rahul.k@email.com"},
			Description: "Well-maintained mountain bike, perfect for city rides. Recently serviced.",
			Posted:      "2 hours ago",
			Rating:      4.8,
			Image:       "🚴",
		},
		{
			ID:          "8a4d2b16-6c2e-4f7b-8d14-9e8a4d2b16bb",
			Title:       "Looking for 1BHK Apartment",
			Price:       "₹8,000-12,000/month",
			Type:        notice.ListingRent,
			Seller:      "Meera Sharma",
			Location:    "Tower B",
			Contact:     notice.Contact{Phone: "+91 87654 32109", Email: "meera.sharma@email.com"},
			Description: "Young professional seeking furnished 1BHK within the society.",
			Posted:      "5 hours ago",
			Rating:      4.9,
			Image:       "🏠",
		},
		{
			ID:          "1c9e7f52-3b8d-4e6a-a1c5-7d1c9e7f52cc",
			Title:       "Home Tutoring Services",
			Price:       "₹500/hour",
			Type:        notice.ListingServices,
			Seller:      "Dr. Priya Patel",
			Location:    "Flat 205, C Block",
			Contact:     notice.Contact{Phone: "+91 76543 21098", Email: "priya.patel@email.com"},
			Description: "Mathematics and Science tutoring for classes 8-12. 10+ years experience.",
			Posted:      "1 day ago",
			Rating:      5.0,
			Image:       "📚",
		},
		{
			ID:          "6b2f8d91-9a4c-4d3e-b7f2-4e6b2f8d91dd",
			Title:       "Sofa Set - 3+2 Seater",
			Price:       "₹15,000",
			Type:        notice.ListingSell,
			Seller:      "Amit Gupta",
			Location:    "Flat 308, A Block",
			Contact:     notice.Contact{Phone: "+91 65432 10987", Email: "amit.g@email.com"},
			Description: "Comfortable sofa set in great condition. Moving sale.",
			Posted:      "3 days ago",
			Rating:      4.7,
			Image:       "🛋",
		},
		{
			ID:          "3e7a5c28-2d9b-4f1c-9b63-8a3e7a5c28ee",
			Title:       "Car Washing Service",
			Price:       "₹200 per wash",
			Type:        notice.ListingServices,
			Seller:      "Ravi Singh",
			Location:    "Ground Floor",
			Contact:     notice.Contact{Phone: "+91 54321 09876", Email: "ravi.singh@email.com"},
			Description: "Professional car cleaning service at your doorstep.",
			Posted:      "1 week ago",
			Rating:      4.6,
			Image:       "🚗",
		},
		{
			ID:          "9d4b6e37-7f1a-4c8d-8e29-5c9d4b6e37ff",
			Title:       "Looking for Baby Stroller",
			Price:       "Up to ₹3,000",
			Type:        notice.ListingWanted,
			Seller:      "Neha Agarwal",
			Location:    "Flat 401, B Block",
			Contact:     notice.Contact{Phone: "+91 43210 98765", Email: "neha.agarwal@email.com"},
			Description: "Need a good condition baby stroller for 6-month-old.",
			Posted:      "4 days ago",
			Rating:      4.8,
			Image:       "👶",
		},
	}
}
