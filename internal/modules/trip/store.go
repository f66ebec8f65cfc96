// README: Trip/Entry/Profile store backed by PostgreSQL.
package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trailbook/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTrip(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (id, owner_id, name, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(t.ID), string(t.OwnerID), t.Name, t.StartDate, t.EndDate, t.CreatedAt,
	)
	return err
}

func (s *Store) GetTrip(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, name, start_date, end_date, created_at
		FROM trips WHERE id = $1`, string(id),
	)
	var t Trip
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.StartDate, &t.EndDate, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id FROM entries WHERE trip_id = $1 ORDER BY entry_date, created_at`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	t.EntryIDs = []types.ID{}
	for rows.Next() {
		var eid string
		if err := rows.Scan(&eid); err != nil {
			return nil, err
		}
		t.EntryIDs = append(t.EntryIDs, types.ID(eid))
	}
	return &t, rows.Err()
}

func (s *Store) ListTripsByOwner(ctx context.Context, ownerID types.ID, limit int) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, name, start_date, end_date, created_at
		FROM trips WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, string(ownerID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.StartDate, &t.EndDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *Store) DeleteTrip(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateEntry(ctx context.Context, e *Entry) error {
	var lat, lng *float64
	if e.Coordinates != nil {
		lat, lng = &e.Coordinates.Lat, &e.Coordinates.Lng
	}
	var tripID *string
	if e.TripID != "" {
		v := string(e.TripID)
		tripID = &v
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO entries (
			id, owner_id, trip_id, title, content, entry_date,
			location_label, country, lat, lng, media_refs, category, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		string(e.ID), string(e.OwnerID), tripID, e.Title, e.Content, e.Date,
		e.LocationLabel, e.Country, lat, lng, e.MediaRefs, string(e.Category), e.CreatedAt,
	)
	return err
}

func (s *Store) GetEntry(ctx context.Context, id types.ID) (*Entry, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, trip_id, title, content, entry_date,
		       location_label, country, lat, lng, media_refs, category, created_at
		FROM entries WHERE id = $1`, string(id),
	)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListEntriesByTrip(ctx context.Context, tripID types.ID) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, trip_id, title, content, entry_date,
		       location_label, country, lat, lng, media_refs, category, created_at
		FROM entries WHERE trip_id = $1
		ORDER BY entry_date, created_at`, string(tripID),
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) ListEntriesByOwner(ctx context.Context, ownerID types.ID, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, trip_id, title, content, entry_date,
		       location_label, country, lat, lng, media_refs, category, created_at
		FROM entries WHERE owner_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2`, string(ownerID), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) DeleteEntry(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM entries WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID types.ID) (*UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, display_name, home_country, interests
		FROM user_profiles WHERE user_id = $1`, string(userID),
	)
	var p UserProfile
	err := row.Scan(&p.UserID, &p.DisplayName, &p.HomeCountry, &p.Interests)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.statsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Stats = *stats
	return &p, nil
}

func (s *Store) UpsertProfile(ctx context.Context, p *UserProfile) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, display_name, home_country, interests)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			home_country = EXCLUDED.home_country,
			interests = EXCLUDED.interests`,
		string(p.UserID), p.DisplayName, p.HomeCountry, p.Interests,
	)
	return err
}

func (s *Store) statsByOwner(ctx context.Context, ownerID types.ID) (*ProfileStats, error) {
	var stats ProfileStats
	row := s.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM trips WHERE owner_id = $1),
			(SELECT count(*) FROM entries WHERE owner_id = $1)`,
		string(ownerID),
	)
	if err := row.Scan(&stats.TotalTrips, &stats.TotalEntries); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT country FROM entries
		WHERE owner_id = $1 AND country <> ''
		ORDER BY country`, string(ownerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats.CountriesVisited = []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		stats.CountriesVisited = append(stats.CountriesVisited, c)
	}
	return &stats, rows.Err()
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var tripID *string
	var lat, lng *float64
	err := row.Scan(
		&e.ID, &e.OwnerID, &tripID, &e.Title, &e.Content, &e.Date,
		&e.LocationLabel, &e.Country, &lat, &lng, &e.MediaRefs, &e.Category, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tripID != nil {
		e.TripID = types.ID(*tripID)
	}
	if lat != nil && lng != nil {
		e.Coordinates = &types.Point{Lat: *lat, Lng: *lng}
	}
	if e.MediaRefs == nil {
		e.MediaRefs = []string{}
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()
	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
