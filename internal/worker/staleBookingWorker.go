package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campusbook/venue-booking/internal/service"
)

// StaleBookingWorker periodically rejects pending bookings whose start
// time has passed; nobody can approve a reservation for a window that has
// already begun.
type StaleBookingWorker struct {
	bookingService service.BookingService
	interval       time.Duration
}

func NewStaleBookingWorker(bookingService service.BookingService, interval time.Duration) *StaleBookingWorker {
	return &StaleBookingWorker{
		bookingService: bookingService,
		interval:       interval,
	}
}

func (w *StaleBookingWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Stale booking worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Stale booking worker stopped")
			return
		case <-ticker.C:
			w.rejectStale(ctx)
		}
	}
}

func (w *StaleBookingWorker) rejectStale(ctx context.Context) {
	count, err := w.bookingService.RejectStaleBookings(ctx)
	if err != nil {
		logrus.Errorf("Failed to reject stale bookings: %v", err)
		return
	}

	if count > 0 {
		logrus.Infof("Rejected %d stale pending bookings", count)
	}
}
