package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noticenest/noticenest/internal/domain/notice"
)

func TestNoticeRepo_ListAnnouncements(t *testing.T) {
	repo := NewNoticeRepo()
	ctx := context.Background()

	all, err := repo.ListAnnouncements(ctx, notice.AnnouncementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Newest first
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].Date.Before(all[i].Date))
	}

	high, err := repo.ListAnnouncements(ctx, notice.AnnouncementFilter{Priority: notice.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, high, 2)

	maint, err := repo.ListAnnouncements(ctx, notice.AnnouncementFilter{
		Search:   "water",
		Category: notice.CategoryMaintenance,
	})
	require.NoError(t, err)
	require.Len(t, maint, 1)
	assert.Equal(t, "Emergency Water Supply Maintenance", maint[0].Title)
}

func TestNoticeRepo_ListEvents(t *testing.T) {
	repo := NewNoticeRepo()
	ctx := context.Background()

	all, err := repo.ListEvents(ctx, notice.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	sports, err := repo.ListEvents(ctx, notice.EventFilter{Category: notice.EventSports})
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, "Summer Sports Tournament", sports[0].Title)

	// Location is searchable
	park, err := repo.ListEvents(ctx, notice.EventFilter{Search: "community park"})
	require.NoError(t, err)
	require.Len(t, park, 1)
	assert.Equal(t, "Independence Day Celebration", park[0].Title)
}

func TestNoticeRepo_ListListings(t *testing.T) {
	repo := NewNoticeRepo()
	ctx := context.Background()

	all, err := repo.ListListings(ctx, notice.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	services, err := repo.ListListings(ctx, notice.ListingFilter{Type: notice.ListingServices})
	require.NoError(t, err)
	assert.Len(t, services, 2)

	none, err := repo.ListListings(ctx, notice.ListingFilter{Search: "helicopter"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
