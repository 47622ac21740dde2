package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/campusbook/venue-booking/internal/database/postgres"
	"github.com/campusbook/venue-booking/internal/entity"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	venueRepo   repository.VenueRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, venueRepo repository.VenueRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
	}
}

// CreateBooking requests a reservation. New bookings start out pending and
// wait for an administrator to approve or reject them; the admission check
// itself happens inside the repository transaction.
func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *CreateBookingRequest) (*entity.Booking, error) {
	if !req.StartTime.Before(req.EndTime.Time) {
		return nil, entity.ErrInvalidTimeRange
	}

	booking := &entity.Booking{
		UserID:    actor.UserID,
		VenueID:   req.VenueID,
		EventName: req.EventName,
		StartTime: req.StartTime.Time,
		EndTime:   req.EndTime.Time,
		Status:    entity.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"venue_id":   booking.VenueID,
		"user_id":    booking.UserID,
	}).Info("Booking created")

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, id int64) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, entity.ErrForbidden
	}

	return booking, nil
}

// ListBookings returns the caller's own bookings; administrators see all.
func (s *bookingService) ListBookings(ctx context.Context, actor Actor) ([]*entity.Booking, error) {
	if actor.IsAdmin() {
		return s.bookingRepo.GetAll(ctx)
	}
	return s.bookingRepo.GetByUserID(ctx, actor.UserID)
}

func (s *bookingService) UpdateBooking(ctx context.Context, actor Actor, id int64, req *UpdateBookingRequest) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, entity.ErrForbidden
	}

	if !req.StartTime.Before(req.EndTime.Time) {
		return nil, entity.ErrInvalidTimeRange
	}

	return s.bookingRepo.UpdateDetails(ctx, id, req.EventName, req.StartTime.Time, req.EndTime.Time)
}

// UpdateBookingStatus applies the state machine with role checks:
// approve and reject are admin operations, cancel belongs to the booking's
// owner (or an admin).
func (s *bookingService) UpdateBookingStatus(ctx context.Context, actor Actor, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	switch status {
	case entity.BookingStatusApproved, entity.BookingStatusRejected:
		if !actor.IsAdmin() {
			return nil, entity.ErrForbidden
		}
	case entity.BookingStatusCancelled:
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if booking.UserID != actor.UserID && !actor.IsAdmin() {
			return nil, entity.ErrForbidden
		}
	default:
		return nil, entity.ErrInvalidStatus
	}

	booking, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
	}).Info("Booking status updated")

	return booking, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor Actor, id int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return entity.ErrForbidden
	}

	return s.bookingRepo.Delete(ctx, id)
}

func (s *bookingService) RejectStaleBookings(ctx context.Context) (int64, error) {
	return s.bookingRepo.RejectStalePending(ctx, time.Now())
}
