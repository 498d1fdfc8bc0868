package users

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/middleware"
)

// SetupUserRoutes configures admin user-management routes
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/users")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListUsers)         // GET    /api/v1/admin/users
		admin.DELETE("/:id", controller.DeleteUser) // DELETE /api/v1/admin/users/:id
	}
}
