package notice

import "strings"

// ListingType groups marketplace listings: items for sale, rentals
// sought or offered, services, and wanted posts.
type ListingType string

const (
	ListingSell     ListingType = "sell"
	ListingRent     ListingType = "rent"
	ListingServices ListingType = "services"
	ListingWanted   ListingType = "wanted"
)

// Contact holds how to reach a listing's seller.
type Contact struct {
	Phone string
	Email string
}

// Listing is one marketplace post. Price stays a display string; no
// transactions happen through the board.
type Listing struct {
	ID          string // uuid
	Title       string
	Price       string
	Type        ListingType
	Seller      string
	Location    string
	Contact     Contact
	Description string
	Posted      string // relative display string, e.g. "2 hours ago"
	Rating      float64
	Image       string // emoji placeholder
}

// ListingFilter holds the query-parameter filters for the marketplace page.
type ListingFilter struct {
	Search string
	Type   ListingType
}

// Matches reports whether the listing passes the filter.
func (l Listing) Matches(f ListingFilter) bool {
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Title), term) &&
			!strings.Contains(strings.ToLower(l.Description), term) &&
			!strings.Contains(strings.ToLower(l.Seller), term) {
			return false
		}
	}
	return true
}
