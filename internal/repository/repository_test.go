package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-booking/internal/database"
	"github.com/iliyamo/fyyur-booking/internal/model"
)

var now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, "sqlite"))
	return db
}

func newVenue(name, city, state string) *model.Venue {
	return &model.Venue{
		Name:      name,
		City:      city,
		State:     state,
		Address:   "1 Main Street",
		Genres:    []string{"Jazz"},
		ImageLink: "https://example.com/v.png",
	}
}

func newArtist(name string) *model.Artist {
	return &model.Artist{
		Name:      name,
		City:      "San Francisco",
		State:     "CA",
		Genres:    []string{"Rock n Roll"},
		ImageLink: "https://example.com/a.png",
	}
}

func addShow(t *testing.T, r *ShowRepo, venueID, artistID uint64, at time.Time) uint64 {
	t.Helper()
	s := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: at}
	require.NoError(t, r.Create(context.Background(), s))
	return s.ID
}

func TestVenueRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(openTestDB(t))

	v := newVenue("The Musical Hop", "San Francisco", "CA")
	v.Genres = []string{"Jazz", "Reggae", "Classical"}
	v.SeekingTalent = true
	v.SeekingDescription = "Looking for a local artist"
	v.FacebookLink = "https://www.facebook.com/TheMusicalHop"
	require.NoError(t, repo.Create(ctx, v))
	assert.Equal(t, uint64(1), v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestVenueEmptyGenresDecodeAsEmptyList(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(openTestDB(t))

	v := newVenue("Quiet Room", "Austin", "TX")
	v.Genres = nil
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Genres)
	assert.Empty(t, got.Genres)
	assert.False(t, got.SeekingTalent)
}

func TestVenueNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(openTestDB(t))

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	v := newVenue("Ghost", "Nowhere", "NV")
	v.ID = 42
	assert.ErrorIs(t, repo.Update(ctx, v), ErrVenueNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), ErrVenueNotFound)
}

func TestVenueUpdateRewritesEveryField(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(openTestDB(t))

	v := newVenue("Old", "Austin", "TX")
	v.SeekingTalent = true
	v.Phone = "555"
	require.NoError(t, repo.Create(ctx, v))

	upd := newVenue("New", "Dallas", "TX")
	upd.ID = v.ID
	upd.Genres = []string{"Blues", "Folk"}
	require.NoError(t, repo.Update(ctx, upd))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)
	assert.False(t, got.SeekingTalent)
	assert.Empty(t, got.Phone)
}

func TestDeleteVenueCascadesToShows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	other := newVenue("Other", "Austin", "TX")
	a := newArtist("Band")
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, venues.Create(ctx, other))
	require.NoError(t, artists.Create(ctx, a))
	gone := addShow(t, shows, v.ID, a.ID, now.Add(time.Hour))
	kept := addShow(t, shows, other.ID, a.ID, now.Add(time.Hour))

	require.NoError(t, venues.Delete(ctx, v.ID))

	_, err := shows.GetByID(ctx, gone)
	assert.ErrorIs(t, err, ErrShowNotFound)
	_, err = shows.GetByID(ctx, kept)
	assert.NoError(t, err)
	_, err = venues.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestDeleteArtistCascadesToShows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	a := newArtist("Band")
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))
	id := addShow(t, shows, v.ID, a.ID, now.Add(-time.Hour))

	require.NoError(t, artists.Delete(ctx, a.ID))
	_, err := shows.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrShowNotFound)

	page, err := shows.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestCreateShowRejectsMissingReferences(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	a := newArtist("Band")
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))

	err := shows.Create(ctx, &model.Show{VenueID: 99, ArtistID: a.ID, StartTime: now})
	assert.ErrorIs(t, err, ErrVenueNotFound)
	err = shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: 99, StartTime: now})
	assert.ErrorIs(t, err, ErrArtistNotFound)

	all, err := shows.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListByLocationGroupsAndCounts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	sf1 := newVenue("The Musical Hop", "San Francisco", "CA")
	ny := newVenue("The Dueling Pianos Bar", "New York", "NY")
	sf2 := newVenue("Park Square", "San Francisco", "CA")
	for _, v := range []*model.Venue{sf1, ny, sf2} {
		require.NoError(t, venues.Create(ctx, v))
	}
	a := newArtist("Band")
	require.NoError(t, artists.Create(ctx, a))
	addShow(t, shows, sf2.ID, a.ID, now.Add(24*time.Hour))
	addShow(t, shows, sf2.ID, a.ID, now.Add(48*time.Hour))
	addShow(t, shows, sf2.ID, a.ID, now.Add(-24*time.Hour))
	addShow(t, shows, sf1.ID, a.ID, now) // exactly now is past

	areas, err := venues.ListByLocation(ctx, now)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "CA", areas[0].State)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, []Summary{
		{ID: sf1.ID, Name: sf1.Name, NumUpcomingShows: 0},
		{ID: sf2.ID, Name: sf2.Name, NumUpcomingShows: 2},
	}, areas[0].Venues)

	assert.Equal(t, "NY", areas[1].State)
	assert.Equal(t, []Summary{{ID: ny.ID, Name: ny.Name}}, areas[1].Venues)
}

func TestListByLocationEmpty(t *testing.T) {
	areas, err := NewVenueRepo(openTestDB(t)).ListByLocation(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists := NewVenueRepo(db), NewArtistRepo(db)

	require.NoError(t, venues.Create(ctx, newVenue("The Musical Hop", "San Francisco", "CA")))
	require.NoError(t, venues.Create(ctx, newVenue("Park Square Live Music & Coffee", "San Francisco", "CA")))
	require.NoError(t, venues.Create(ctx, newVenue("100%_Pure", "Austin", "TX")))
	require.NoError(t, artists.Create(ctx, newArtist("Guns N Petals")))
	require.NoError(t, artists.Create(ctx, newArtist("The Wild Sax Band")))

	got, err := venues.Search(ctx, "hop", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Musical Hop", got[0].Name)

	got, err = venues.Search(ctx, "MUSIC", now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Less(t, got[0].ID, got[1].ID)

	got, err = venues.Search(ctx, "%", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100%_Pure", got[0].Name)

	got, err = venues.Search(ctx, "zzz", now)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = venues.Search(ctx, "", now)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	band, err := artists.Search(ctx, "band", now)
	require.NoError(t, err)
	require.Len(t, band, 1)
	assert.Equal(t, "The Wild Sax Band", band[0].Name)
}

func TestSearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists := NewVenueRepo(db), NewArtistRepo(db)

	cafe := newVenue("Café Élan 100%", "Austin", "TX")
	require.NoError(t, venues.Create(ctx, cafe))
	require.NoError(t, venues.Create(ctx, newVenue("The Musical Hop", "San Francisco", "CA")))
	require.NoError(t, artists.Create(ctx, newArtist("Björk Ørsted")))

	for _, term := range []string{"élan", "ÉLAN", "Café", "CAFÉ É"} {
		got, err := venues.Search(ctx, term, now)
		require.NoError(t, err)
		require.Len(t, got, 1, term)
		assert.Equal(t, cafe.ID, got[0].ID, term)
	}

	got, err := artists.Search(ctx, "BJÖRK ø", now)
	require.NoError(t, err)
	require.Len(t, got, 1)

	cafe.Name = "Ärmel Hall"
	require.NoError(t, venues.Update(ctx, cafe))
	got, err = venues.Search(ctx, "élan", now)
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = venues.Search(ctx, "ärmel", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ärmel Hall", got[0].Name)
}

func TestVenueShowsPartitionAndOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	require.NoError(t, venues.Create(ctx, v))
	a := newArtist("Band")
	require.NoError(t, artists.Create(ctx, a))

	old := addShow(t, shows, v.ID, a.ID, now.Add(-48*time.Hour))
	recent := addShow(t, shows, v.ID, a.ID, now.Add(-time.Hour))
	later := addShow(t, shows, v.ID, a.ID, now.Add(48*time.Hour))
	soon := addShow(t, shows, v.ID, a.ID, now.Add(time.Hour))
	soonTie := addShow(t, shows, v.ID, a.ID, now.Add(time.Hour))

	past, upcoming, err := venues.Shows(ctx, v.ID, now)
	require.NoError(t, err)

	require.Len(t, past, 2)
	assert.Equal(t, []uint64{recent, old}, []uint64{past[0].ShowID, past[1].ShowID})
	require.Len(t, upcoming, 3)
	assert.Equal(t, []uint64{soon, soonTie, later}, []uint64{upcoming[0].ShowID, upcoming[1].ShowID, upcoming[2].ShowID})

	first := upcoming[0]
	assert.Equal(t, a.ID, first.ArtistID)
	assert.Equal(t, a.Name, first.ArtistName)
	assert.Equal(t, a.ImageLink, first.ArtistImageLink)
	assert.True(t, first.StartTime.Equal(now.Add(time.Hour)))
	assert.Equal(t, time.UTC, first.StartTime.Location())

	aPast, aUpcoming, err := artists.Shows(ctx, a.ID, now)
	require.NoError(t, err)
	assert.Len(t, aPast, 2)
	assert.Len(t, aUpcoming, 3)
	assert.Equal(t, v.Name, aUpcoming[0].VenueName)
}

func TestShowAtNowCountsAsPast(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	require.NoError(t, venues.Create(ctx, v))
	a := newArtist("Band")
	require.NoError(t, artists.Create(ctx, a))

	atNow := addShow(t, shows, v.ID, a.ID, now)
	next := addShow(t, shows, v.ID, a.ID, now.Add(time.Second))

	past, upcoming, err := venues.Shows(ctx, v.ID, now)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, atNow, past[0].ShowID)
	require.Len(t, upcoming, 1)
	assert.Equal(t, next, upcoming[0].ShowID)

	aPast, aUpcoming, err := artists.Shows(ctx, a.ID, now)
	require.NoError(t, err)
	require.Len(t, aPast, 1)
	assert.Equal(t, atNow, aPast[0].ShowID)
	require.Len(t, aUpcoming, 1)

	areas, err := venues.ListByLocation(ctx, now)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, 1, areas[0].Venues[0].NumUpcomingShows)

	found, err := artists.Search(ctx, "band", now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].NumUpcomingShows)

	// One second later the second show has started too.
	_, upcoming, err = venues.Shows(ctx, v.ID, now.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestShowListOrderedByStartTime(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	require.NoError(t, venues.Create(ctx, v))
	a := newArtist("Band")
	require.NoError(t, artists.Create(ctx, a))

	second := addShow(t, shows, v.ID, a.ID, now.Add(2*time.Hour))
	first := addShow(t, shows, v.ID, a.ID, now.Add(time.Hour))

	rows, err := shows.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first, rows[0].ID)
	assert.Equal(t, second, rows[1].ID)
	assert.Equal(t, "Hall", rows[0].VenueName)
	assert.Equal(t, "Band", rows[0].ArtistName)
}

func TestShowStartTimeTruncatedToSeconds(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := newVenue("Hall", "Austin", "TX")
	require.NoError(t, venues.Create(ctx, v))
	a := newArtist("Band")
	require.NoError(t, artists.Create(ctx, a))

	at := time.Date(2030, 5, 1, 20, 0, 0, 123456789, time.FixedZone("X", 3600))
	id := addShow(t, shows, v.ID, a.ID, at)

	got, err := shows.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.StartTime.Equal(at.Truncate(time.Second)))
}

func TestArtistListOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewArtistRepo(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newArtist("Zed")))
	require.NoError(t, repo.Create(ctx, newArtist("Abe")))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ArtistRef{{ID: 1, Name: "Zed"}, {ID: 2, Name: "Abe"}}, rows)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%hop%", containsPattern(" Hop "))
	assert.Equal(t, "%100!%!_!!%", containsPattern("100%_!"))
	assert.Equal(t, "%%", containsPattern(""))
	assert.Equal(t, "%élan%", containsPattern("ÉLAN"))
	assert.Equal(t, "café élan", searchKey(" Café Élan "))
}

func TestGenresCodec(t *testing.T) {
	raw, err := encodeGenres(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	got, err := decodeGenres(`["Jazz","R&B"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "R&B"}, got)

	got, err = decodeGenres("null")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	_, err = decodeGenres("{")
	assert.Error(t, err)
}
