package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// ArtistDetail is an artist with its shows split around now.
type ArtistDetail struct {
	model.Artist
	PastShows          []repository.ArtistShowRow `json:"past_shows"`
	UpcomingShows      []repository.ArtistShowRow `json:"upcoming_shows"`
	PastShowsCount     int                        `json:"past_shows_count"`
	UpcomingShowsCount int                        `json:"upcoming_shows_count"`
}

// ListArtists returns the id and name of every artist.
func (d *Directory) ListArtists(ctx context.Context) ([]repository.ArtistRef, error) {
	rows, err := d.artists.List(ctx)
	if err != nil {
		return nil, d.readFailed("listArtists", err)
	}
	return rows, nil
}

// SearchArtists matches artist names containing term, ignoring case.
func (d *Directory) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	rows, err := d.artists.Search(ctx, term, d.now())
	if err != nil {
		return SearchResult{}, d.readFailed("searchArtists", err)
	}
	return newSearchResult(rows), nil
}

// GetArtist returns the stored artist for the edit form.
func (d *Directory) GetArtist(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := d.artists.GetByID(ctx, id)
	if err != nil {
		return nil, d.readFailed("getArtist", err)
	}
	return a, nil
}

// GetArtistDetail returns the artist with its past and upcoming shows.
func (d *Directory) GetArtistDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	const op = "getArtistDetail"
	a, err := d.artists.GetByID(ctx, id)
	if err != nil {
		return nil, d.readFailed(op, err)
	}
	past, upcoming, err := d.artists.Shows(ctx, id, d.now())
	if err != nil {
		return nil, d.readFailed(op, err)
	}
	return &ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// CreateArtist validates in and stores a new artist, returning its id.
func (d *Directory) CreateArtist(ctx context.Context, in ArtistInput) (uint64, error) {
	const op = "createArtist"
	in.normalize()
	var a *model.Artist
	err := d.mutation(op, func() error {
		if fields := fieldErrors(d.validate, in); fields != nil {
			return invalid(op, fields)
		}
		a = in.artist(0)
		return d.artists.Create(ctx, a)
	}, zap.String("name", in.Name))
	if err != nil {
		return 0, err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.ArtistCreated, EntityID: a.ID, Name: a.Name})
	return a.ID, nil
}

// UpdateArtist rewrites every field of artist id from in.
func (d *Directory) UpdateArtist(ctx context.Context, id uint64, in ArtistInput) error {
	const op = "updateArtist"
	in.normalize()
	err := d.mutation(op, func() error {
		if fields := fieldErrors(d.validate, in); fields != nil {
			return invalid(op, fields)
		}
		return d.artists.Update(ctx, in.artist(id))
	}, zap.Uint64("artist_id", id))
	if err != nil {
		return err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.ArtistUpdated, EntityID: id, Name: in.Name})
	return nil
}

// DeleteArtist removes artist id and its shows.
func (d *Directory) DeleteArtist(ctx context.Context, id uint64) error {
	err := d.mutation("deleteArtist", func() error {
		return d.artists.Delete(ctx, id)
	}, zap.Uint64("artist_id", id))
	if err != nil {
		return err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.ArtistDeleted, EntityID: id})
	return nil
}
