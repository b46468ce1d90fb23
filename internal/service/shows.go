package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

const startTimeMessage = "must be a timestamp (RFC 3339 or YYYY-MM-DD HH:MM:SS)"

// ListShows returns every show with venue and artist names attached.
func (d *Directory) ListShows(ctx context.Context) ([]repository.ShowListing, error) {
	rows, err := d.shows.List(ctx)
	if err != nil {
		return nil, d.readFailed("listShows", err)
	}
	return rows, nil
}

// GetShow returns a single show.
func (d *Directory) GetShow(ctx context.Context, id uint64) (*model.Show, error) {
	s, err := d.shows.GetByID(ctx, id)
	if err != nil {
		return nil, d.readFailed("getShow", err)
	}
	return s, nil
}

// CreateShow books an artist at a venue.  Ids that are not positive or
// that reference missing rows are validation failures on the matching
// field; the reference check runs inside the insert transaction.
func (d *Directory) CreateShow(ctx context.Context, in ShowInput) (uint64, error) {
	const op = "createShow"
	var s *model.Show
	err := d.mutation(op, func() error {
		fields := fieldErrors(d.validate, in)
		start, ok := ParseStartTime(in.StartTime)
		if !ok && in.StartTime != "" {
			if fields == nil {
				fields = map[string]string{}
			}
			fields["start_time"] = startTimeMessage
		}
		if fields != nil {
			return invalid(op, fields)
		}

		s = &model.Show{VenueID: uint64(in.VenueID), ArtistID: uint64(in.ArtistID), StartTime: start}
		err := d.shows.Create(ctx, s)
		switch {
		case errors.Is(err, repository.ErrVenueNotFound):
			return &Error{Kind: KindValidation, Op: op, Fields: map[string]string{"venue_id": "does not reference an existing venue"}, Err: err}
		case errors.Is(err, repository.ErrArtistNotFound):
			return &Error{Kind: KindValidation, Op: op, Fields: map[string]string{"artist_id": "does not reference an existing artist"}, Err: err}
		}
		return err
	}, zap.Int64("venue_id", in.VenueID), zap.Int64("artist_id", in.ArtistID))
	if err != nil {
		return 0, err
	}
	start := s.StartTime
	d.publish(ctx, queue.DirectoryEvent{
		Type:      queue.ShowCreated,
		EntityID:  s.ID,
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: &start,
	})
	return s.ID, nil
}
