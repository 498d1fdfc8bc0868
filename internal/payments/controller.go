package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boxoffice/internal/shared/errs"
	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/shared/utils/response"
)

type MockPaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// PayBooking handles POST /api/v1/payments/mock
func (c *Controller) PayBooking(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req MockPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	result, err := c.service.PayBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		response.RespondJSON(ctx, "error", errs.HTTPStatus(err), err.Error(), nil, errs.DetailsOf(err))
		return
	}

	message := "Payment successful"
	if result.AlreadyPaid {
		message = "Already paid"
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, result, nil)
}
