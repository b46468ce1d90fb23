package model

// Artist represents a performer who can be booked at venues.  It
// corresponds to a row in the `artists` table and owns the shows
// that reference it.
type Artist struct {
	ID                 uint64   `json:"id"`                  // artists.id
	Name               string   `json:"name"`                // artists.name
	City               string   `json:"city"`                // artists.city
	State              string   `json:"state"`               // artists.state
	Phone              string   `json:"phone"`               // artists.phone
	Genres             []string `json:"genres"`              // artists.genres (JSON array)
	ImageLink          string   `json:"image_link"`          // artists.image_link
	FacebookLink       string   `json:"facebook_link"`       // artists.facebook_link
	WebsiteLink        string   `json:"website_link"`        // artists.website_link
	SeekingVenue       bool     `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string   `json:"seeking_description"` // artists.seeking_description
}
