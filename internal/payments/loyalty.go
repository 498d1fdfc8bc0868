package payments

import (
	"boxoffice/internal/bookings"
	"boxoffice/internal/pricing"
	"boxoffice/internal/users"
)

// MembershipThreshold is the paid booking count at which a customer
// becomes a loyalty member. Membership never lapses.
const MembershipThreshold = 3

// accrueLoyalty applies the post-payment loyalty rule: only a booking of
// exactly one adult ticket counts towards membership. Returns the updated
// snapshot and whether anything changed.
func accrueLoyalty(loyalty users.Loyalty, booking *bookings.Booking) (users.Loyalty, bool) {
	if len(booking.Tickets) != 1 {
		return loyalty, false
	}
	if booking.Tickets[0].Category != pricing.CategoryAdult.String() {
		return loyalty, false
	}

	loyalty.BookingCount++
	if loyalty.BookingCount >= MembershipThreshold {
		loyalty.IsMember = true
	}
	return loyalty, true
}
