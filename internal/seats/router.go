package seats

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/middleware"
)

// SetupSeatRoutes configures the seat map route
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/events/:id/seats")
	seats.Use(middleware.JWTAuth())
	{
		seats.GET("", controller.GetSeatMap) // GET /api/v1/events/:id/seats
	}
}
