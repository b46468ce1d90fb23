package model

import "time"

// Show is a scheduled booking of one artist at one venue.  It is a
// pure join row with a single extra attribute, the start time.
// Shows are created explicitly and removed only when their venue
// or artist is deleted.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show (required, FK venues.id).
//  ArtistID  – artist performing (required, FK artists.id).
//  StartTime – when the show begins, stored in UTC.
type Show struct {
	ID        uint64    `json:"id"`         // shows.id
	VenueID   uint64    `json:"venue_id"`   // shows.venue_id
	ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}
