package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/venue-booking/internal/entity"
	"github.com/campusbook/venue-booking/internal/service"
)

func bookingRouter(svc service.BookingService, actor service.Actor) *gin.Engine {
	h := NewBookingHandler(svc)

	router := gin.New()
	group := router.Group("/api/bookings", asActor(actor))
	group.POST("", h.CreateBooking)
	group.GET("", h.ListBookings)
	group.GET("/:id", h.GetBooking)
	group.PUT("/:id", h.UpdateBooking)
	group.PATCH("/:id/status", h.UpdateBookingStatus)
	group.DELETE("/:id", h.DeleteBooking)
	return router
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	var gotActor service.Actor
	svc := &stubBookingService{
		createFn: func(_ context.Context, actor service.Actor, req *service.CreateBookingRequest) (*entity.Booking, error) {
			gotActor = actor
			return &entity.Booking{
				ID:        7,
				UserID:    actor.UserID,
				VenueID:   req.VenueID,
				EventName: req.EventName,
				StartTime: req.StartTime.Time,
				EndTime:   req.EndTime.Time,
				Status:    entity.BookingStatusPending,
			}, nil
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 42, Role: entity.RoleUser})
	w := perform(router, http.MethodPost, "/api/bookings", gin.H{
		"venue_id":   3,
		"event_name": "Robotics Club Demo",
		"start_time": "2026-09-01T10:00",
		"end_time":   "2026-09-01T12:00",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(42), gotActor.UserID)

	var booking entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), booking.StartTime)
}

func TestCreateBookingOverlapIsConflict(t *testing.T) {
	svc := &stubBookingService{
		createFn: func(context.Context, service.Actor, *service.CreateBookingRequest) (*entity.Booking, error) {
			return nil, entity.ErrVenueUnavailable
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleUser})
	w := perform(router, http.MethodPost, "/api/bookings", gin.H{
		"venue_id":   3,
		"event_name": "Clash",
		"start_time": "2026-09-01T10:00",
		"end_time":   "2026-09-01T12:00",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), entity.ErrVenueUnavailable.Error())
}

func TestCreateBookingMalformedBody(t *testing.T) {
	router := bookingRouter(&stubBookingService{}, service.Actor{UserID: 1, Role: entity.RoleUser})

	w := perform(router, http.MethodPost, "/api/bookings", `{"venue_id": "not a number"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingMissingFields(t *testing.T) {
	router := bookingRouter(&stubBookingService{}, service.Actor{UserID: 1, Role: entity.RoleUser})

	w := perform(router, http.MethodPost, "/api/bookings", gin.H{"venue_id": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(context.Context, service.Actor, int64) (*entity.Booking, error) {
			return nil, entity.ErrBookingNotFound
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleUser})
	w := perform(router, http.MethodGet, "/api/bookings/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingForeignOwnerForbidden(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(context.Context, service.Actor, int64) (*entity.Booking, error) {
			return nil, entity.ErrForbidden
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 2, Role: entity.RoleUser})
	w := perform(router, http.MethodGet, "/api/bookings/7", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingPathIDValidation(t *testing.T) {
	router := bookingRouter(&stubBookingService{}, service.Actor{UserID: 1, Role: entity.RoleUser})

	for _, target := range []string{"/api/bookings/abc", "/api/bookings/0", "/api/bookings/-3"} {
		w := perform(router, http.MethodGet, target, nil)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "target %s", target)
	}
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	router := bookingRouter(&stubBookingService{}, service.Actor{UserID: 1, Role: entity.RoleAdmin})

	w := perform(router, http.MethodPatch, "/api/bookings/7/status", gin.H{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid booking status")
}

func TestUpdateBookingStatusInvalidTransition(t *testing.T) {
	svc := &stubBookingService{
		updateStatusFn: func(context.Context, service.Actor, int64, entity.BookingStatus) (*entity.Booking, error) {
			return nil, entity.ErrInvalidTransition
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleAdmin})
	w := perform(router, http.MethodPatch, "/api/bookings/7/status", gin.H{"status": "rejected"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateBookingStatusPassesParsedStatus(t *testing.T) {
	var gotStatus entity.BookingStatus
	svc := &stubBookingService{
		updateStatusFn: func(_ context.Context, _ service.Actor, _ int64, status entity.BookingStatus) (*entity.Booking, error) {
			gotStatus = status
			return &entity.Booking{ID: 7, Status: status}, nil
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleAdmin})
	w := perform(router, http.MethodPatch, "/api/bookings/7/status", gin.H{"status": "approved"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.BookingStatusApproved, gotStatus)
}

func TestListBookings(t *testing.T) {
	svc := &stubBookingService{
		listFn: func(context.Context, service.Actor) ([]*entity.Booking, error) {
			return []*entity.Booking{{ID: 1}, {ID: 2}}, nil
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleUser})
	w := perform(router, http.MethodGet, "/api/bookings", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var bookings []*entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 2)
}

func TestDeleteBooking(t *testing.T) {
	var deletedID int64
	svc := &stubBookingService{
		deleteFn: func(_ context.Context, _ service.Actor, id int64) error {
			deletedID = id
			return nil
		},
	}

	router := bookingRouter(svc, service.Actor{UserID: 1, Role: entity.RoleUser})
	w := perform(router, http.MethodDelete, "/api/bookings/7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), deletedID)
}
