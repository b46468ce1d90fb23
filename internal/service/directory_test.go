package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-booking/internal/database"
	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/queue"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.DirectoryEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.DirectoryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, "sqlite"))
	return db
}

func newTestDirectory(t *testing.T, opts ...Option) *Directory {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewDirectory(openTestDB(t), opts...)
}

func musicalHop() VenueInput {
	return VenueInput{
		Name:      "The Musical Hop",
		City:      "San Francisco",
		State:     "CA",
		Address:   "1015 Folsom Street",
		Genres:    []string{"Jazz"},
		ImageLink: "https://images.example.com/hop.png",
	}
}

func gunsNPetals() ArtistInput {
	return ArtistInput{
		Name:      "Guns N Petals",
		City:      "San Francisco",
		State:     "CA",
		Genres:    []string{"Rock n Roll"},
		ImageLink: "https://images.example.com/gnp.png",
	}
}

func TestPastShowCountedForVenueAndArtist(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	venueID, err := d.CreateVenue(ctx, musicalHop())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), venueID)

	artistID, err := d.CreateArtist(ctx, gunsNPetals())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), artistID)

	_, err = d.CreateShow(ctx, ShowInput{VenueID: 1, ArtistID: 1, StartTime: "2019-05-21 21:30:00"})
	require.NoError(t, err)

	detail, err := d.GetVenueDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 0, detail.UpcomingShowsCount)
	require.Len(t, detail.PastShows, 1)
	assert.Equal(t, "Guns N Petals", detail.PastShows[0].ArtistName)
	assert.Empty(t, detail.UpcomingShows)

	artist, err := d.GetArtistDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, artist.PastShowsCount)
	assert.Equal(t, "The Musical Hop", artist.PastShows[0].VenueName)
}

func TestCreateVenueRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	in := musicalHop()
	in.Genres = []string{"Jazz", "Reggae", "Classical", "Folk"}
	in.SeekingTalent = true
	in.SeekingDescription = "We are on the lookout for a local artist"
	in.FacebookLink = "https://www.facebook.com/TheMusicalHop"
	in.Phone = "123-123-1234"

	id, err := d.CreateVenue(ctx, in)
	require.NoError(t, err)

	detail, err := d.GetVenueDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Name, detail.Name)
	assert.Equal(t, in.City, detail.City)
	assert.Equal(t, in.State, detail.State)
	assert.Equal(t, in.Address, detail.Address)
	assert.Equal(t, in.Genres, detail.Genres)
	assert.True(t, detail.SeekingTalent)
	assert.Equal(t, in.SeekingDescription, detail.SeekingDescription)
	assert.NotNil(t, detail.PastShows)
	assert.NotNil(t, detail.UpcomingShows)
}

func TestCreateVenueValidation(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	cases := map[string]struct {
		mutate func(*VenueInput)
		field  string
	}{
		"missing name":      {func(in *VenueInput) { in.Name = "   " }, "name"},
		"missing city":      {func(in *VenueInput) { in.City = "" }, "city"},
		"missing address":   {func(in *VenueInput) { in.Address = "" }, "address"},
		"missing image":     {func(in *VenueInput) { in.ImageLink = "" }, "image_link"},
		"no genres":         {func(in *VenueInput) { in.Genres = nil }, "genres"},
		"blank genres":      {func(in *VenueInput) { in.Genres = []string{" "} }, "genres"},
		"unknown genre":     {func(in *VenueInput) { in.Genres = []string{"Jazz", "Polka"} }, "genres"},
		"unknown state":     {func(in *VenueInput) { in.State = "ZZ" }, "state"},
		"bad facebook link": {func(in *VenueInput) { in.FacebookLink = "not a url" }, "facebook_link"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := musicalHop()
			tc.mutate(&in)
			_, err := d.CreateVenue(ctx, in)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
			assert.Contains(t, FieldErrors(err), tc.field)
		})
	}

	areas, err := d.ListVenuesByLocation(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestCreateVenueNormalizesInput(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	in := musicalHop()
	in.Name = "  The Musical Hop  "
	in.State = "ca"
	id, err := d.CreateVenue(ctx, in)
	require.NoError(t, err)

	v, err := d.GetVenue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, "CA", v.State)
}

func TestCreateArtistValidation(t *testing.T) {
	d := newTestDirectory(t)
	in := gunsNPetals()
	in.ImageLink = ""
	in.WebsiteLink = "ftp//broken"

	_, err := d.CreateArtist(context.Background(), in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	fields := FieldErrors(err)
	assert.Equal(t, "is required", fields["image_link"])
	assert.Equal(t, "must be a valid URL", fields["website_link"])
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	_, err := d.GetVenueDetail(ctx, 7)
	assert.True(t, IsNotFound(err))
	_, err = d.GetArtistDetail(ctx, 7)
	assert.True(t, IsNotFound(err))
	_, err = d.GetVenue(ctx, 7)
	assert.True(t, IsNotFound(err))
	_, err = d.GetArtist(ctx, 7)
	assert.True(t, IsNotFound(err))
	_, err = d.GetShow(ctx, 7)
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(d.UpdateVenue(ctx, 7, musicalHop())))
	assert.True(t, IsNotFound(d.UpdateArtist(ctx, 7, gunsNPetals())))
	assert.True(t, IsNotFound(d.DeleteVenue(ctx, 7)))
	assert.True(t, IsNotFound(d.DeleteArtist(ctx, 7)))
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	d := newTestDirectory(t)
	in := musicalHop()
	in.Name = ""
	err := d.UpdateVenue(context.Background(), 7, in)
	assert.True(t, IsValidation(err))
}

func TestUpdateArtistRewritesFields(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	in := gunsNPetals()
	in.SeekingVenue = true
	in.SeekingDescription = "Looking for shows"
	id, err := d.CreateArtist(ctx, in)
	require.NoError(t, err)

	upd := gunsNPetals()
	upd.Name = "Guns N Roses"
	upd.Genres = []string{"Heavy Metal", "Rock n Roll"}
	require.NoError(t, d.UpdateArtist(ctx, id, upd))

	got, err := d.GetArtist(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Roses", got.Name)
	assert.Equal(t, []string{"Heavy Metal", "Rock n Roll"}, got.Genres)
	assert.False(t, got.SeekingVenue)
	assert.Empty(t, got.SeekingDescription)
}

func TestCreateShowValidation(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	venueID, err := d.CreateVenue(ctx, musicalHop())
	require.NoError(t, err)
	artistID, err := d.CreateArtist(ctx, gunsNPetals())
	require.NoError(t, err)

	cases := map[string]struct {
		in    ShowInput
		field string
	}{
		"zero venue":     {ShowInput{VenueID: 0, ArtistID: int64(artistID), StartTime: "2030-01-01 20:00:00"}, "venue_id"},
		"negative venue": {ShowInput{VenueID: -3, ArtistID: int64(artistID), StartTime: "2030-01-01 20:00:00"}, "venue_id"},
		"missing venue":  {ShowInput{VenueID: 99, ArtistID: int64(artistID), StartTime: "2030-01-01 20:00:00"}, "venue_id"},
		"missing artist": {ShowInput{VenueID: int64(venueID), ArtistID: 99, StartTime: "2030-01-01 20:00:00"}, "artist_id"},
		"no start time":  {ShowInput{VenueID: int64(venueID), ArtistID: int64(artistID)}, "start_time"},
		"bad start time": {ShowInput{VenueID: int64(venueID), ArtistID: int64(artistID), StartTime: "next tuesday"}, "start_time"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := d.CreateShow(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
			assert.Contains(t, FieldErrors(err), tc.field)
		})
	}

	shows, err := d.ListShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestUpcomingCountsMatchShows(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	venueID, err := d.CreateVenue(ctx, musicalHop())
	require.NoError(t, err)
	artistID, err := d.CreateArtist(ctx, gunsNPetals())
	require.NoError(t, err)

	for _, at := range []string{"2019-05-21 21:30:00", "2035-04-01T20:00:00Z", "2035-04-08 20:00:00", fixedNow.Format(time.RFC3339)} {
		_, err := d.CreateShow(ctx, ShowInput{VenueID: int64(venueID), ArtistID: int64(artistID), StartTime: at})
		require.NoError(t, err)
	}

	detail, err := d.GetVenueDetail(ctx, venueID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, 2, detail.PastShowsCount)
	assert.Equal(t, 4, detail.UpcomingShowsCount+detail.PastShowsCount)
	// The show starting exactly at now is the most recent past show.
	require.Len(t, detail.PastShows, 2)
	assert.True(t, detail.PastShows[0].StartTime.Equal(fixedNow))

	artist, err := d.GetArtistDetail(ctx, artistID)
	require.NoError(t, err)
	require.Equal(t, 2, artist.PastShowsCount)
	assert.True(t, artist.PastShows[0].StartTime.Equal(fixedNow))
	assert.True(t, artist.UpcomingShows[0].StartTime.After(fixedNow))

	areas, err := d.ListVenuesByLocation(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, detail.UpcomingShowsCount, areas[0].Venues[0].NumUpcomingShows)

	res, err := d.SearchVenues(ctx, "hop")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 2, res.Results[0].NumUpcomingShows)

	ares, err := d.SearchArtists(ctx, "PETALS")
	require.NoError(t, err)
	assert.Equal(t, 1, ares.Count)
	assert.Equal(t, 2, ares.Results[0].NumUpcomingShows)
}

func TestSearchNoMatches(t *testing.T) {
	d := newTestDirectory(t)
	res, err := d.SearchVenues(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestDeleteVenueRemovesShows(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	venueID, err := d.CreateVenue(ctx, musicalHop())
	require.NoError(t, err)
	artistID, err := d.CreateArtist(ctx, gunsNPetals())
	require.NoError(t, err)
	showID, err := d.CreateShow(ctx, ShowInput{VenueID: int64(venueID), ArtistID: int64(artistID), StartTime: "2035-04-01 20:00:00"})
	require.NoError(t, err)

	require.NoError(t, d.DeleteVenue(ctx, venueID))

	_, err = d.GetShow(ctx, showID)
	assert.True(t, IsNotFound(err))
	artist, err := d.GetArtistDetail(ctx, artistID)
	require.NoError(t, err)
	assert.Zero(t, artist.UpcomingShowsCount)
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	d := newTestDirectory(t, WithPublisher(pub))

	venueID, err := d.CreateVenue(ctx, musicalHop())
	require.NoError(t, err)
	artistID, err := d.CreateArtist(ctx, gunsNPetals())
	require.NoError(t, err)
	_, err = d.CreateShow(ctx, ShowInput{VenueID: int64(venueID), ArtistID: int64(artistID), StartTime: "2035-04-01 20:00:00"})
	require.NoError(t, err)
	require.NoError(t, d.UpdateVenue(ctx, venueID, musicalHop()))
	require.NoError(t, d.DeleteArtist(ctx, artistID))

	bad := musicalHop()
	bad.Name = ""
	_, err = d.CreateVenue(ctx, bad)
	require.Error(t, err)

	assert.Equal(t, []string{
		queue.VenueCreated,
		queue.ArtistCreated,
		queue.ShowCreated,
		queue.VenueUpdated,
		queue.ArtistDeleted,
	}, pub.types())

	show := pub.events[2]
	assert.Equal(t, venueID, show.VenueID)
	assert.Equal(t, artistID, show.ArtistID)
	require.NotNil(t, show.StartTime)
	assert.Equal(t, fixedNow, show.OccurredAt)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	d := newTestDirectory(t, WithPublisher(pub))

	id, err := d.CreateVenue(context.Background(), musicalHop())
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Len(t, pub.types(), 1)
}

func TestMutationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := newTestDirectory(t, WithMetrics(metrics.New(reg)))

	_, err := d.CreateVenue(context.Background(), musicalHop())
	require.NoError(t, err)
	bad := musicalHop()
	bad.City = ""
	_, err = d.CreateVenue(context.Background(), bad)
	require.Error(t, err)
	require.Error(t, d.DeleteVenue(context.Background(), 99))

	n, err := testutil.GatherAndCount(reg, "fyyur_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPersistenceErrorOnClosedStore(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)
	require.NoError(t, db.Close())

	_, err := d.CreateVenue(context.Background(), musicalHop())
	require.Error(t, err)
	assert.True(t, IsPersistence(err))

	_, err = d.ListShows(context.Background())
	assert.True(t, IsPersistence(err))
}

func TestErrorFormatting(t *testing.T) {
	err := invalid("createVenue", map[string]string{"name": "is required", "city": "is required"})
	assert.Equal(t, "createVenue: validation: city is required, name is required", err.Error())

	wrapped := persistence("deleteVenue", errors.New("disk full"))
	assert.Equal(t, "deleteVenue: persistence: disk full", wrapped.Error())
	assert.False(t, IsValidation(wrapped))
	assert.Nil(t, FieldErrors(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestParseStartTime(t *testing.T) {
	cases := map[string]time.Time{
		"2019-05-21 21:30:00":       time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
		"2019-05-21T21:30:00Z":      time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
		"2019-05-21T23:30:00+02:00": time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
		" 2019-05-21 21:30 ":        time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, ok := ParseStartTime(raw)
		require.True(t, ok, raw)
		assert.True(t, want.Equal(got), raw)
	}
	_, ok := ParseStartTime("21/05/2019")
	assert.False(t, ok)
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerRules(v, choiceRules))

	err := registerRules(v, map[string]validator.Func{"": choiceRules["genre"]})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register validation")

	assert.Error(t, registerRules(v, map[string]validator.Func{"broken": nil}))
	assert.NotPanics(t, func() { newValidator() })
}
