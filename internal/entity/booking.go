package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Blocking reports whether a booking in this status counts toward the
// non-overlap invariant. Pending bookings block provisionally so the same
// window cannot be requested twice while awaiting approval.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled
}

// CanTransitionTo enforces the booking state machine:
// pending -> approved | rejected, approved -> cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusApproved || next == BookingStatusRejected
	case BookingStatusApproved:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

type Booking struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	VenueID   int64         `json:"venue_id" db:"venue_id"`
	EventName string        `json:"event_name" db:"event_name"`
	StartTime time.Time     `json:"start_time" db:"start_time"`
	EndTime   time.Time     `json:"end_time" db:"end_time"`
	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
