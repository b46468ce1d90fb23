// Package queue defines the directory events exchanged over the message
// broker, the publisher used after successful mutations and the
// background consumer that records them in an activity log.
package queue

import "time"

// Event types published by the directory.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// DirectoryEvent is published after a mutation commits.  It carries enough
// information for downstream consumers to log or notify without querying
// the primary database.  VenueID, ArtistID and StartTime are only set on
// show events.
type DirectoryEvent struct {
	Type       string     `json:"type"`
	EntityID   uint64     `json:"entity_id"`
	Name       string     `json:"name,omitempty"`
	VenueID    uint64     `json:"venue_id,omitempty"`
	ArtistID   uint64     `json:"artist_id,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
