package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// ShowRepo manages persistence for shows.  Shows are only ever created
// here; they disappear when their venue or artist is deleted.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the provided DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show in its own transaction.  See CreateTx.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.CreateTx(ctx, tx, s)
	})
}

// CreateTx inserts a new show using the provided transaction.  Both
// references are verified inside tx first; a missing venue yields
// ErrVenueNotFound and a missing artist ErrArtistNotFound, and nothing
// is written.  The caller must commit or roll back the transaction.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	ok, err := rowExists(ctx, tx, "venues", s.VenueID)
	if err != nil {
		return fmt.Errorf("lookup venue: %w", err)
	}
	if !ok {
		return ErrVenueNotFound
	}
	if ok, err = rowExists(ctx, tx, "artists", s.ArtistID); err != nil {
		return fmt.Errorf("lookup artist: %w", err)
	}
	if !ok {
		return ErrArtistNotFound
	}

	s.StartTime = dbTime(s.StartTime)
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("show id: %w", err)
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a show by id or returns ErrShowNotFound.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	var s model.Show
	err := r.db.QueryRowContext(ctx, `SELECT id, venue_id, artist_id, start_time FROM shows WHERE id = ?`, id).
		Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	s.StartTime = s.StartTime.UTC()
	return &s, nil
}

// List returns every show joined with its venue name and its artist's
// name and image, ordered by start time then id.
func (r *ShowRepo) List(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT s.id, v.id, v.name, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v  ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	out := []ShowListing{}
	for rows.Next() {
		var d ShowListing
		if err := rows.Scan(
			&d.ID,
			&d.VenueID,
			&d.VenueName,
			&d.ArtistID,
			&d.ArtistName,
			&d.ArtistImageLink,
			&d.StartTime,
		); err != nil {
			return nil, err
		}
		d.StartTime = d.StartTime.UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
