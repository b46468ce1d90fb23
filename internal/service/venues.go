package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// VenueDetail is a venue with its shows split around now.
type VenueDetail struct {
	model.Venue
	PastShows          []repository.VenueShowRow `json:"past_shows"`
	UpcomingShows      []repository.VenueShowRow `json:"upcoming_shows"`
	PastShowsCount     int                       `json:"past_shows_count"`
	UpcomingShowsCount int                       `json:"upcoming_shows_count"`
}

// ListVenuesByLocation groups every venue by (city, state).
func (d *Directory) ListVenuesByLocation(ctx context.Context) ([]repository.Area, error) {
	areas, err := d.venues.ListByLocation(ctx, d.now())
	if err != nil {
		return nil, d.readFailed("listVenuesByLocation", err)
	}
	return areas, nil
}

// SearchVenues matches venue names containing term, ignoring case.
func (d *Directory) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	rows, err := d.venues.Search(ctx, term, d.now())
	if err != nil {
		return SearchResult{}, d.readFailed("searchVenues", err)
	}
	return newSearchResult(rows), nil
}

// GetVenue returns the stored venue, used to prefill the edit form.
func (d *Directory) GetVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := d.venues.GetByID(ctx, id)
	if err != nil {
		return nil, d.readFailed("getVenue", err)
	}
	return v, nil
}

// GetVenueDetail returns the venue with its past and upcoming shows.
func (d *Directory) GetVenueDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	const op = "getVenueDetail"
	v, err := d.venues.GetByID(ctx, id)
	if err != nil {
		return nil, d.readFailed(op, err)
	}
	past, upcoming, err := d.venues.Shows(ctx, id, d.now())
	if err != nil {
		return nil, d.readFailed(op, err)
	}
	return &VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// CreateVenue validates in and stores a new venue, returning its id.
func (d *Directory) CreateVenue(ctx context.Context, in VenueInput) (uint64, error) {
	const op = "createVenue"
	in.normalize()
	var v *model.Venue
	err := d.mutation(op, func() error {
		if fields := fieldErrors(d.validate, in); fields != nil {
			return invalid(op, fields)
		}
		v = in.venue(0)
		return d.venues.Create(ctx, v)
	}, zap.String("name", in.Name))
	if err != nil {
		return 0, err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.VenueCreated, EntityID: v.ID, Name: v.Name})
	return v.ID, nil
}

// UpdateVenue rewrites every field of venue id from in.
func (d *Directory) UpdateVenue(ctx context.Context, id uint64, in VenueInput) error {
	const op = "updateVenue"
	in.normalize()
	err := d.mutation(op, func() error {
		if fields := fieldErrors(d.validate, in); fields != nil {
			return invalid(op, fields)
		}
		return d.venues.Update(ctx, in.venue(id))
	}, zap.Uint64("venue_id", id))
	if err != nil {
		return err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.VenueUpdated, EntityID: id, Name: in.Name})
	return nil
}

// DeleteVenue removes venue id and its shows.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) error {
	err := d.mutation("deleteVenue", func() error {
		return d.venues.Delete(ctx, id)
	}, zap.Uint64("venue_id", id))
	if err != nil {
		return err
	}
	d.publish(ctx, queue.DirectoryEvent{Type: queue.VenueDeleted, EntityID: id})
	return nil
}
