package repository

import (
	"strings"
	"time"
)

// Summary is the short form of a venue or artist used by the grouped
// listing and the search results.
type Summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues that share one (city, state) pair.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// ArtistRef is a row of the artist index.
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// VenueShowRow is a show on a venue's detail page; it carries the
// performing artist.
type VenueShowRow struct {
	ShowID          uint64    `json:"show_id"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShowRow is a show on an artist's detail page; it carries the
// hosting venue.
type ArtistShowRow struct {
	ShowID         uint64    `json:"show_id"`
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ShowListing is a row of the public show list joined with both sides.
type ShowListing struct {
	ID              uint64    `json:"id"`
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// likeEscape is the LIKE escape character shared by the MySQL and SQLite
// queries.
const likeEscape = "!"

// searchKey is the folded form of a name stored in search_name.  Folding
// happens here rather than in SQL: SQLite's LOWER and LIKE only fold
// ASCII.
func searchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsPattern turns a free-text term into a LIKE pattern matching any
// search_name that contains it.  LIKE metacharacters in the term match
// literally.
func containsPattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(searchKey(term)) + "%"
}

// dbTime normalises a timestamp before it is written or compared.  The
// store keeps UTC at second precision.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
