package model

// Venue represents a place that hosts performances.  It
// corresponds to a row in the `venues` table.  A venue owns the
// shows that reference it; deleting the venue deletes them.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name.
//  City, State        – location used to group venue listings.
//  Address            – street address.
//  Phone              – optional contact number.
//  Genres             – ordered list of genre names, never nil.
//  ImageLink          – picture shown on listings.
//  FacebookLink       – optional facebook page URL.
//  WebsiteLink        – optional website URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when seeking talent.
type Venue struct {
	ID                 uint64   `json:"id"`                  // venues.id
	Name               string   `json:"name"`                // venues.name
	City               string   `json:"city"`                // venues.city
	State              string   `json:"state"`               // venues.state
	Address            string   `json:"address"`             // venues.address
	Phone              string   `json:"phone"`               // venues.phone
	Genres             []string `json:"genres"`              // venues.genres (JSON array)
	ImageLink          string   `json:"image_link"`          // venues.image_link
	FacebookLink       string   `json:"facebook_link"`       // venues.facebook_link
	WebsiteLink        string   `json:"website_link"`        // venues.website_link
	SeekingTalent      bool     `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string   `json:"seeking_description"` // venues.seeking_description
}
