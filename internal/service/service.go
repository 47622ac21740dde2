package service

import (
	"context"

	"github.com/campusbook/venue-booking/internal/entity"
)

// Actor identifies the authenticated caller for ownership and role checks.
type Actor struct {
	UserID int64
	Role   entity.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string) error
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*entity.User, error)

	// EnsureAdmin creates the configured administrator account on first
	// startup; it is a no-op when the account already exists.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type VenueService interface {
	CreateVenue(ctx context.Context, req *VenueRequest) (*entity.Venue, error)
	GetVenue(ctx context.Context, id int64) (*entity.Venue, error)
	GetAllVenues(ctx context.Context) ([]*entity.Venue, error)
	UpdateVenue(ctx context.Context, id int64, req *VenueRequest) (*entity.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error

	// GetVenueSchedule lists the venue's blocking bookings in start-time
	// order, for availability display.
	GetVenueSchedule(ctx context.Context, venueID int64) ([]*entity.Booking, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req *CreateBookingRequest) (*entity.Booking, error)
	GetBooking(ctx context.Context, actor Actor, id int64) (*entity.Booking, error)
	ListBookings(ctx context.Context, actor Actor) ([]*entity.Booking, error)
	UpdateBooking(ctx context.Context, actor Actor, id int64, req *UpdateBookingRequest) (*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, actor Actor, id int64, status entity.BookingStatus) (*entity.Booking, error)
	DeleteBooking(ctx context.Context, actor Actor, id int64) error

	// RejectStaleBookings rejects pending bookings whose start time has
	// already passed; used by the background worker.
	RejectStaleBookings(ctx context.Context) (int64, error)
}

type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
}

type VenueRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Description string `json:"description" binding:"max=2000"`
}

type CreateBookingRequest struct {
	VenueID   int64              `json:"venue_id" binding:"required"`
	EventName string             `json:"event_name" binding:"required,min=1,max=255"`
	StartTime entity.BookingTime `json:"start_time" binding:"required"`
	EndTime   entity.BookingTime `json:"end_time" binding:"required"`
}

type UpdateBookingRequest struct {
	EventName string             `json:"event_name" binding:"required,min=1,max=255"`
	StartTime entity.BookingTime `json:"start_time" binding:"required"`
	EndTime   entity.BookingTime `json:"end_time" binding:"required"`
}
