package service

import (
	"context"
	"fmt"

	"github.com/noticenest/noticenest/internal/domain/notice"
)

// BoardRepository is the read surface of the notice board content.
type BoardRepository interface {
	ListAnnouncements(ctx context.Context, filter notice.AnnouncementFilter) ([]notice.Announcement, error)
	ListEvents(ctx context.Context, filter notice.EventFilter) ([]notice.Event, error)
	ListListings(ctx context.Context, filter notice.ListingFilter) ([]notice.Listing, error)
}

// BoardService serves the community notice board pages.
type BoardService struct {
	repo BoardRepository
}

// NewBoardService constructs a BoardService.
func NewBoardService(repo BoardRepository) *BoardService {
	return &BoardService{repo: repo}
}

// Announcements lists announcements matching the filter.
func (s *BoardService) Announcements(ctx context.Context, filter notice.AnnouncementFilter) ([]notice.Announcement, error) {
	out, err := s.repo.ListAnnouncements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return out, nil
}

// Events lists events matching the filter.
func (s *BoardService) Events(ctx context.Context, filter notice.EventFilter) ([]notice.Event, error) {
	out, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// Listings lists marketplace listings matching the filter.
func (s *BoardService) Listings(ctx context.Context, filter notice.ListingFilter) ([]notice.Listing, error) {
	out, err := s.repo.ListListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return out, nil
}

// Highlights returns the small set of items surfaced on the home page:
// the newest announcements and soonest events.
func (s *BoardService) Highlights(ctx context.Context) ([]notice.Announcement, []notice.Event, error) {
	announcements, err := s.repo.ListAnnouncements(ctx, notice.AnnouncementFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("list announcements: %w", err)
	}
	if len(announcements) > 3 {
		announcements = announcements[:3]
	}

	events, err := s.repo.ListEvents(ctx, notice.EventFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) > 3 {
		events = events[:3]
	}

	return announcements, events, nil
}
