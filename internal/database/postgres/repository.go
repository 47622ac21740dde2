package repository

import (
	"context"
	"time"

	"github.com/campusbook/venue-booking/internal/entity"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	GetByID(ctx context.Context, id int64) (*entity.Venue, error)
	GetAll(ctx context.Context) ([]*entity.Venue, error)
	Update(ctx context.Context, venue *entity.Venue) error

	// Delete fails with entity.ErrVenueInUse while blocking bookings
	// still reference the venue.
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// Create runs the admission check and the insert inside one
	// transaction holding the venue row lock.
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	GetAll(ctx context.Context) ([]*entity.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetByVenueID(ctx context.Context, venueID int64) ([]*entity.Booking, error)
	GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)

	// GetBlockingByVenue returns the bookings that count toward the
	// non-overlap invariant, ordered by start time.
	GetBlockingByVenue(ctx context.Context, venueID int64) ([]*entity.Booking, error)

	// UpdateStatus enforces the state machine and re-runs admission when
	// the transition target is approved.
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error)

	// UpdateDetails changes the event name and time window, re-running
	// admission against the venue's other blocking bookings.
	UpdateDetails(ctx context.Context, id int64, eventName string, start, end time.Time) (*entity.Booking, error)

	Delete(ctx context.Context, id int64) error

	// RejectStalePending rejects pending bookings whose start time has
	// passed and returns the number of rows affected.
	RejectStalePending(ctx context.Context, before time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*entity.User, error)
}
