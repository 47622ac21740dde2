package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/venue-booking/internal/auth"
	"github.com/campusbook/venue-booking/internal/transport/middleware"
)

func InitRoutes(
	venueHandler *VenueHandler,
	bookingHandler *BookingHandler,
	userHandler *UserHandler,
	tokens *auth.TokenManager,
	sessions *auth.SessionStore,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	authorized := middleware.Auth(tokens, sessions)
	adminOnly := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authorized, userHandler.Logout)
			users.GET("/profile", authorized, userHandler.GetProfile)
			users.PUT("/profile", authorized, userHandler.UpdateProfile)
		}

		venues := api.Group("/venues")
		{
			venues.GET("", venueHandler.GetAllVenues)
			venues.GET("/:id", venueHandler.GetVenue)
			venues.GET("/:id/bookings", venueHandler.GetVenueSchedule)
			venues.POST("", authorized, adminOnly, venueHandler.CreateVenue)
			venues.PUT("/:id", authorized, adminOnly, venueHandler.UpdateVenue)
			venues.DELETE("/:id", authorized, adminOnly, venueHandler.DeleteVenue)
		}

		bookings := api.Group("/bookings", authorized)
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.PUT("/:id", bookingHandler.UpdateBooking)
			bookings.PATCH("/:id/status", bookingHandler.UpdateBookingStatus)
			bookings.DELETE("/:id", bookingHandler.DeleteBooking)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
