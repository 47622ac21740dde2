package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusbook/venue-booking/internal/admission"
	"github.com/campusbook/venue-booking/internal/entity"
)

const bookingColumns = `id, user_id, venue_id, event_name, start_time, end_time, status, created_at, updated_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// lockVenue takes the per-venue row lock that serializes admission
// decisions. Requests for different venues lock different rows and run
// concurrently.
func lockVenue(ctx context.Context, tx *sql.Tx, venueID int64) error {
	var locked int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, venueID).Scan(&locked)
	if err == sql.ErrNoRows {
		return entity.ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock venue: %w", err)
	}
	return nil
}

func blockingForVenue(ctx context.Context, tx *sql.Tx, venueID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE venue_id = $1 AND status IN ('pending', 'approved')
		ORDER BY start_time ASC
	`

	rows, err := tx.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.VenueID,
			&booking.EventName,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// Create admits and persists a booking in one transaction. The venue row
// lock is held from before the existing set is read until the insert
// commits, so two requests for overlapping windows on the same venue
// serialize and the second sees the first's row.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockVenue(ctx, tx, booking.VenueID); err != nil {
		return err
	}

	var userExists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, booking.UserID).Scan(&userExists)
	if err == sql.ErrNoRows {
		return entity.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}

	existing, err := blockingForVenue(ctx, tx, booking.VenueID)
	if err != nil {
		return err
	}

	if err := admission.Evaluate(admission.Candidate{
		VenueID:   booking.VenueID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	}, existing); err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (user_id, venue_id, event_name, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		booking.UserID,
		booking.VenueID,
		booking.EventName,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		now,
		now,
	).Scan(&booking.ID)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VenueID,
		&booking.EventName,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetByVenueID(ctx context.Context, venueID int64) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE venue_id = $1 ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by venue: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by status: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetBlockingByVenue(ctx context.Context, venueID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE venue_id = $1 AND status IN ('pending', 'approved')
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus moves a booking through the state machine. A transition
// into approved re-runs admission under the venue lock: a booking that
// sat in pending could by now conflict with something approved in the
// interim.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, entity.ErrInvalidTransition
	}

	if status == entity.BookingStatusApproved {
		if err := lockVenue(ctx, tx, booking.VenueID); err != nil {
			return nil, err
		}

		existing, err := blockingForVenue(ctx, tx, booking.VenueID)
		if err != nil {
			return nil, err
		}

		if err := admission.Evaluate(admission.Candidate{
			VenueID:          booking.VenueID,
			StartTime:        booking.StartTime,
			EndTime:          booking.EndTime,
			ExcludeBookingID: booking.ID,
		}, existing); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, query, status, now, id); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.Status = status
	booking.UpdatedAt = now
	return booking, nil
}

// UpdateDetails edits the event name and time window. The new window goes
// through admission against the venue's other blocking bookings, with the
// edited booking excluded so it cannot conflict with itself.
func (r *bookingRepository) UpdateDetails(ctx context.Context, id int64, eventName string, start, end time.Time) (*entity.Booking, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status.Terminal() {
		return nil, entity.ErrInvalidTransition
	}

	if err := lockVenue(ctx, tx, booking.VenueID); err != nil {
		return nil, err
	}

	existing, err := blockingForVenue(ctx, tx, booking.VenueID)
	if err != nil {
		return nil, err
	}

	if err := admission.Evaluate(admission.Candidate{
		VenueID:          booking.VenueID,
		StartTime:        start,
		EndTime:          end,
		ExcludeBookingID: booking.ID,
	}, existing); err != nil {
		return nil, err
	}

	now := time.Now()
	query := `UPDATE bookings SET event_name = $1, start_time = $2, end_time = $3, updated_at = $4 WHERE id = $5`
	if _, err := tx.ExecContext(ctx, query, eventName, start, end, now, id); err != nil {
		return nil, fmt.Errorf("failed to update booking details: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.EventName = eventName
	booking.StartTime = start
	booking.EndTime = end
	booking.UpdatedAt = now
	return booking, nil
}

func getBookingForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	var booking entity.Booking
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VenueID,
		&booking.EventName,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking with lock: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) RejectStalePending(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE bookings SET status = 'rejected', updated_at = $1 WHERE status = 'pending' AND start_time < $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), before)
	if err != nil {
		return 0, fmt.Errorf("failed to reject stale bookings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
