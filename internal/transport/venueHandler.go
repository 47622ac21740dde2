package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/venue-booking/internal/service"
)

type VenueHandler struct {
	venueService service.VenueService
}

func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *VenueHandler) GetAllVenues(c *gin.Context) {
	venues, err := h.venueService.GetAllVenues(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	venue, err := h.venueService.GetVenue(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) GetVenueSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bookings, err := h.venueService.GetVenueSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req service.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	venue, err := h.venueService.CreateVenue(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	venue, err := h.venueService.UpdateVenue(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.venueService.DeleteVenue(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "venue deleted"})
}
