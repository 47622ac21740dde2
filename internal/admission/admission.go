// Package admission decides whether a candidate booking may be accepted
// given the bookings that already exist for the same venue. It performs no
// I/O and never mutates its inputs, so it is safe to call from concurrent
// requests; callers are responsible for fetching the existing set and for
// serializing evaluate-then-commit (see the booking repository).
package admission

import (
	"time"

	"github.com/campusbook/venue-booking/internal/entity"
)

// Candidate is the reservation window being requested.
type Candidate struct {
	VenueID   int64
	StartTime time.Time
	EndTime   time.Time

	// ExcludeBookingID removes one booking from the existing set, so a
	// booking whose times are being edited does not conflict with itself.
	ExcludeBookingID int64
}

// Evaluate returns nil when the candidate may be accepted,
// entity.ErrInvalidTimeRange when the window is empty or inverted, and
// entity.ErrVenueUnavailable when a blocking booking overlaps it.
//
// Intervals are half-open: [start, end). Touching endpoints do not
// overlap, so a booking ending at 11:00 coexists with one starting at
// 11:00. The outcome does not depend on the order of the existing set.
func Evaluate(candidate Candidate, existing []*entity.Booking) error {
	if !candidate.StartTime.Before(candidate.EndTime) {
		return entity.ErrInvalidTimeRange
	}

	for _, b := range existing {
		if !b.Status.Blocking() {
			continue
		}
		if candidate.ExcludeBookingID != 0 && b.ID == candidate.ExcludeBookingID {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			return entity.ErrVenueUnavailable
		}
	}

	return nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
