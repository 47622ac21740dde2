package entity

import "errors"

var (
	// Venue errors
	ErrVenueNotFound    = errors.New("venue not found")
	ErrVenueInUse       = errors.New("venue has active bookings")
	ErrVenueUnavailable = errors.New("venue is already booked for this time range")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidStatus     = errors.New("invalid booking status")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden operation")
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
