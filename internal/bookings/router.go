package bookings

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/middleware"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)        // POST /api/v1/bookings
		bookings.GET("/paid", controller.ListPaidBookings) // GET  /api/v1/bookings/paid
		bookings.GET("/:id", controller.GetBooking)        // GET  /api/v1/bookings/:id
	}
}
