package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, seeking_venue, seeking_description`

// Create inserts a new artist in one transaction and sets a.ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO artists (name, search_name, city, state, phone, genres, image_link,
			facebook_link, website_link, seeking_venue, seeking_description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q, a.Name, searchKey(a.Name), a.City, a.State, a.Phone, genres,
			a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("artist id: %w", err)
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID fetches an artist by id or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var (
		a      model.Artist
		genres string
	)
	err := r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	if a.Genres, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns the id and name of every artist ordered by id.
func (r *ArtistRepo) List(ctx context.Context) ([]ArtistRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	out := []ArtistRef{}
	for rows.Next() {
		var a ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites every mutable column of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "artists", a.ID)
		if err != nil {
			return fmt.Errorf("lookup artist: %w", err)
		}
		if !ok {
			return ErrArtistNotFound
		}
		const q = `UPDATE artists SET name = ?, search_name = ?, city = ?, state = ?, phone = ?, genres = ?,
			image_link = ?, facebook_link = ?, website_link = ?,
			seeking_venue = ?, seeking_description = ?
			WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q, a.Name, searchKey(a.Name), a.City, a.State, a.Phone, genres,
			a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		return nil
	})
}

// Delete removes an artist and the shows it performs in, in one
// transaction.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "artists", id)
		if err != nil {
			return fmt.Errorf("lookup artist: %w", err)
		}
		if !ok {
			return ErrArtistNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
			return fmt.Errorf("delete artist shows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		return nil
	})
}

// Search returns artists whose name contains term, case-insensitively,
// ordered by id.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]Summary, error) {
	const q = `SELECT a.id, a.name,
			(SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time > ?) AS num_upcoming
		FROM artists a
		WHERE a.search_name LIKE ? ESCAPE '` + likeEscape + `'
		ORDER BY a.id`
	return querySummaries(ctx, r.db, q, dbTime(now), containsPattern(term))
}

// Shows splits the artist's shows into past and upcoming sets with the
// same ordering rules as VenueRepo.Shows.
func (r *ArtistRepo) Shows(ctx context.Context, artistID uint64, now time.Time) (past, upcoming []ArtistShowRow, err error) {
	const base = `SELECT s.id, v.id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ? AND `
	t := dbTime(now)
	if past, err = r.queryShows(ctx, base+`s.start_time <= ? ORDER BY s.start_time DESC, s.id ASC`, artistID, t); err != nil {
		return nil, nil, err
	}
	if upcoming, err = r.queryShows(ctx, base+`s.start_time > ? ORDER BY s.start_time ASC, s.id ASC`, artistID, t); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}

func (r *ArtistRepo) queryShows(ctx context.Context, q string, args ...any) ([]ArtistShowRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("artist shows: %w", err)
	}
	defer rows.Close()

	out := []ArtistShowRow{}
	for rows.Next() {
		var s ArtistShowRow
		if err := rows.Scan(&s.ShowID, &s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
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
