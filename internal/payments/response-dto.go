package payments

import (
	"boxoffice/internal/bookings"
	"boxoffice/internal/users"
)

// PaymentResult is the settlement outcome. AlreadyPaid marks an idempotent
// replay of a booking that was settled earlier.
type PaymentResult struct {
	Booking     *bookings.Booking `json:"booking"`
	Loyalty     users.Loyalty     `json:"loyalty"`
	AlreadyPaid bool              `json:"already_paid"`
}
