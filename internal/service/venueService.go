package service

import (
	"context"

	"github.com/sirupsen/logrus"

	repository "github.com/campusbook/venue-booking/internal/database/postgres"
	"github.com/campusbook/venue-booking/internal/entity"
)

type venueService struct {
	venueRepo   repository.VenueRepository
	bookingRepo repository.BookingRepository
}

func NewVenueService(venueRepo repository.VenueRepository, bookingRepo repository.BookingRepository) VenueService {
	return &venueService{
		venueRepo:   venueRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, req *VenueRequest) (*entity.Venue, error) {
	venue := &entity.Venue{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"venue_id": venue.ID,
		"name":     venue.Name,
	}).Info("Venue created")

	return venue, nil
}

func (s *venueService) GetVenue(ctx context.Context, id int64) (*entity.Venue, error) {
	return s.venueRepo.GetByID(ctx, id)
}

func (s *venueService) GetAllVenues(ctx context.Context) ([]*entity.Venue, error) {
	return s.venueRepo.GetAll(ctx)
}

func (s *venueService) UpdateVenue(ctx context.Context, id int64, req *VenueRequest) (*entity.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue.Name = req.Name
	venue.Capacity = req.Capacity
	venue.Description = req.Description

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, err
	}

	return venue, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.WithField("venue_id", id).Info("Venue deleted")
	return nil
}

func (s *venueService) GetVenueSchedule(ctx context.Context, venueID int64) ([]*entity.Booking, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetBlockingByVenue(ctx, venueID)
}
