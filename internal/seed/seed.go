// Package seed loads the sample directory used for demos and local
// development: three venues, three artists and five shows.
package seed

import (
	"context"
	"fmt"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// Venues are the sample venues in insertion order.
var Venues = []service.VenueInput{
	{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		Genres:             []string{"Jazz", "Reggae", "Classical", "Folk"},
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		WebsiteLink:        "https://www.themusicalhop.com",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
	},
	{
		Name:         "The Dueling Pianos Bar",
		City:         "New York",
		State:        "NY",
		Address:      "335 Delancey Street",
		Phone:        "914-003-1132",
		Genres:       []string{"Classical", "R&B", "Hip-Hop"},
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		WebsiteLink:  "https://www.theduelingpianos.com",
	},
	{
		Name:         "Park Square Live Music & Coffee",
		City:         "San Francisco",
		State:        "CA",
		Address:      "34 Whiskey Moore Ave",
		Phone:        "415-000-1234",
		Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		WebsiteLink:  "https://www.parksquarelivemusicandcoffee.com",
	},
}

// Artists are the sample artists in insertion order.
var Artists = []service.ArtistInput{
	{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             []string{"Rock n Roll"},
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		WebsiteLink:        "https://www.gunsnpetalsband.com",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	},
	{
		Name:         "Matt Quevedo",
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		Genres:       []string{"Jazz"},
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
	},
	{
		Name:      "The Wild Sax Band",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		Genres:    []string{"Jazz", "Classical"},
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
	},
}

// show references venues and artists by their position in Venues and
// Artists.
type show struct {
	venue, artist int
	start         string
}

var shows = []show{
	{venue: 0, artist: 0, start: "2019-05-21 21:30:00"},
	{venue: 2, artist: 1, start: "2019-06-15 23:00:00"},
	{venue: 2, artist: 2, start: "2035-04-01 20:00:00"},
	{venue: 2, artist: 2, start: "2035-04-08 20:00:00"},
	{venue: 2, artist: 2, start: "2035-04-15 20:00:00"},
}

// Result reports the ids created by Load.
type Result struct {
	VenueIDs  []uint64
	ArtistIDs []uint64
	ShowIDs   []uint64
}

// Load inserts the sample data through dir so every record passes the
// same validation as a form submission.
func Load(ctx context.Context, dir *service.Directory) (Result, error) {
	var res Result
	for _, v := range Venues {
		id, err := dir.CreateVenue(ctx, v)
		if err != nil {
			return res, fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		res.VenueIDs = append(res.VenueIDs, id)
	}
	for _, a := range Artists {
		id, err := dir.CreateArtist(ctx, a)
		if err != nil {
			return res, fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		res.ArtistIDs = append(res.ArtistIDs, id)
	}
	for _, s := range shows {
		id, err := dir.CreateShow(ctx, service.ShowInput{
			VenueID:   int64(res.VenueIDs[s.venue]),
			ArtistID:  int64(res.ArtistIDs[s.artist]),
			StartTime: s.start,
		})
		if err != nil {
			return res, fmt.Errorf("seed show %d/%d: %w", s.venue, s.artist, err)
		}
		res.ShowIDs = append(res.ShowIDs, id)
	}
	return res, nil
}
