package events

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/middleware"
)

// SetupEventRoutes configures all event-related routes
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	events.Use(middleware.JWTAuth())
	{
		// Logged-in users browse and view events
		events.GET("", controller.BrowseEvents) // GET /api/v1/events
		events.GET("/:id", controller.GetEvent) // GET /api/v1/events/:id

		// Admin-only event management
		admin := events.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateEvent)       // POST   /api/v1/events
			admin.DELETE("/:id", controller.DeleteEvent) // DELETE /api/v1/events/:id
		}
	}

	// Admin seat reservation
	adminEvents := rg.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("/:id/reserve-seat", controller.ReserveSeat) // POST /api/v1/admin/events/:id/reserve-seat
	}
}
