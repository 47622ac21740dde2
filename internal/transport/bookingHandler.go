package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/venue-booking/internal/entity"
	"github.com/campusbook/venue-booking/internal/service"
	"github.com/campusbook/venue-booking/internal/transport/middleware"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// UpdateStatusRequest carries the target state for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: c.GetInt64(middleware.ContextUserID),
		Role:   entity.UserRole(c.GetString(middleware.ContextRole)),
	}
}

func parseBookingStatus(status string) (entity.BookingStatus, bool) {
	switch entity.BookingStatus(status) {
	case entity.BookingStatusPending,
		entity.BookingStatusApproved,
		entity.BookingStatusRejected,
		entity.BookingStatusCancelled:
		return entity.BookingStatus(status), true
	default:
		return "", false
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	status, ok := parseBookingStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid booking status: " + req.Status})
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), actorFrom(c), id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}
