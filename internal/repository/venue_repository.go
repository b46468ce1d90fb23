package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
	facebook_link, website_link, seeking_talent, seeking_description`

// Create inserts a new venue in one transaction.  On success v.ID holds
// the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO venues (name, search_name, city, state, address, phone, genres, image_link,
			facebook_link, website_link, seeking_talent, seeking_description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q, v.Name, searchKey(v.Name), v.City, v.State, v.Address, v.Phone, genres,
			v.ImageLink, v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("venue id: %w", err)
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue by id.  It returns ErrVenueNotFound when no row
// matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update rewrites every mutable column of the venue identified by v.ID.
// Existence is checked inside the same transaction so the caller gets
// ErrVenueNotFound rather than a silent no-op.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "venues", v.ID)
		if err != nil {
			return fmt.Errorf("lookup venue: %w", err)
		}
		if !ok {
			return ErrVenueNotFound
		}
		const q = `UPDATE venues SET name = ?, search_name = ?, city = ?, state = ?, address = ?, phone = ?,
			genres = ?, image_link = ?, facebook_link = ?, website_link = ?,
			seeking_talent = ?, seeking_description = ?
			WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q, v.Name, searchKey(v.Name), v.City, v.State, v.Address, v.Phone, genres,
			v.ImageLink, v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		return nil
	})
}

// Delete removes a venue together with every show that references it.
// Both deletes share one transaction.  It returns ErrVenueNotFound when
// the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "venues", id)
		if err != nil {
			return fmt.Errorf("lookup venue: %w", err)
		}
		if !ok {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return fmt.Errorf("delete venue shows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		return nil
	})
}

// ListByLocation returns every venue grouped by (city, state).  Areas are
// ordered by state then city and venues inside an area by id.  Each
// summary counts the venue's shows starting strictly after now.
func (r *VenueRepo) ListByLocation(ctx context.Context, now time.Time) ([]Area, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
			(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming
		FROM venues v
		ORDER BY v.state, v.city, v.id`
	rows, err := r.db.QueryContext(ctx, q, dbTime(now))
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	out := []Area{}
	for rows.Next() {
		var (
			s           Summary
			city, state string
		)
		if err := rows.Scan(&s.ID, &s.Name, &city, &state, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].City != city || out[n-1].State != state {
			out = append(out, Area{City: city, State: state, Venues: []Summary{}})
		}
		last := &out[len(out)-1]
		last.Venues = append(last.Venues, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns the venues whose name contains term, case-insensitively,
// ordered by id.  An empty term matches every venue.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]Summary, error) {
	const q = `SELECT v.id, v.name,
			(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming
		FROM venues v
		WHERE v.search_name LIKE ? ESCAPE '` + likeEscape + `'
		ORDER BY v.id`
	return querySummaries(ctx, r.db, q, dbTime(now), containsPattern(term))
}

// Shows returns the venue's past (start_time <= now, latest first) and
// upcoming (start_time > now, soonest first) shows with the performing
// artist attached.  Ties are broken by show id.
func (r *VenueRepo) Shows(ctx context.Context, venueID uint64, now time.Time) (past, upcoming []VenueShowRow, err error) {
	const base = `SELECT s.id, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ? AND `
	t := dbTime(now)
	if past, err = r.queryShows(ctx, base+`s.start_time <= ? ORDER BY s.start_time DESC, s.id ASC`, venueID, t); err != nil {
		return nil, nil, err
	}
	if upcoming, err = r.queryShows(ctx, base+`s.start_time > ? ORDER BY s.start_time ASC, s.id ASC`, venueID, t); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}

func (r *VenueRepo) queryShows(ctx context.Context, q string, args ...any) ([]VenueShowRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("venue shows: %w", err)
	}
	defer rows.Close()

	out := []VenueShowRow{}
	for rows.Next() {
		var s VenueShowRow
		if err := rows.Scan(&s.ShowID, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(row scanner) (*model.Venue, error) {
	var (
		v      model.Venue
		genres string
	)
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	v.Genres = g
	return &v, nil
}

// querySummaries runs a query selecting (id, name, num_upcoming) rows.
func querySummaries(ctx context.Context, db *sql.DB, q string, args ...any) ([]Summary, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
