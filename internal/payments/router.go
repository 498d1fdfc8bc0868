package payments

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/middleware"
)

// SetupPaymentRoutes configures all payment-related routes
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuth())
	{
		payments.POST("/mock", controller.PayBooking) // POST /api/v1/payments/mock
	}
}
