package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusbook/venue-booking/internal/entity"
)

type venueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	query := `
		INSERT INTO venues (name, capacity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		venue.Name,
		venue.Capacity,
		venue.Description,
		now,
		now,
	).Scan(&venue.ID)

	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	venue.CreatedAt = now
	venue.UpdatedAt = now
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*entity.Venue, error) {
	query := `
		SELECT id, name, capacity, description, created_at, updated_at
		FROM venues
		WHERE id = $1
	`

	var venue entity.Venue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Capacity,
		&venue.Description,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return &venue, nil
}

func (r *venueRepository) GetAll(ctx context.Context) ([]*entity.Venue, error) {
	query := `
		SELECT id, name, capacity, description, created_at, updated_at
		FROM venues
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		var venue entity.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Capacity,
			&venue.Description,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}

	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, capacity = $2, description = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		venue.Name,
		venue.Capacity,
		venue.Description,
		time.Now(),
		venue.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrVenueNotFound
	}

	venue.UpdatedAt = time.Now()
	return nil
}

// Delete removes a venue unless blocking bookings still reference it.
// The venue row is locked first so a concurrent booking request cannot
// slip in between the reference check and the delete.
func (r *venueRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err == sql.ErrNoRows {
		return entity.ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock venue: %w", err)
	}

	var active int
	query := `SELECT COUNT(*) FROM bookings WHERE venue_id = $1 AND status IN ('pending', 'approved')`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&active); err != nil {
		return fmt.Errorf("failed to count venue bookings: %w", err)
	}
	if active > 0 {
		return entity.ErrVenueInUse
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE venue_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete venue bookings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
