package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campusbook/venue-booking/internal/entity"
)

// ErrorResponse mirrors the error shape the front end expects.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes. Anything not in
// the taxonomy is a 500 and gets logged with its cause; the client only
// sees a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrVenueNotFound),
		errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, entity.ErrInvalidTimeRange),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, entity.ErrVenueUnavailable),
		errors.Is(err, entity.ErrVenueInUse),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, entity.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: entity.ErrStorageUnavailable.Error()})

	default:
		logrus.WithError(err).Error("Unhandled error in request")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
