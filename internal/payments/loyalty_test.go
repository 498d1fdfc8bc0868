package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boxoffice/internal/bookings"
	"boxoffice/internal/users"
)

func singleTicketBooking(category string) *bookings.Booking {
	return &bookings.Booking{
		Tickets: []bookings.Ticket{{Category: category}},
	}
}

func TestAccrueLoyalty(t *testing.T) {
	t.Run("single adult ticket accrues", func(t *testing.T) {
		updated, changed := accrueLoyalty(users.Loyalty{}, singleTicketBooking("adult"))

		assert.True(t, changed)
		assert.Equal(t, 1, updated.BookingCount)
		assert.False(t, updated.IsMember)
	})

	t.Run("membership starts at the third qualifying booking", func(t *testing.T) {
		updated, changed := accrueLoyalty(users.Loyalty{BookingCount: 2}, singleTicketBooking("adult"))

		assert.True(t, changed)
		assert.Equal(t, 3, updated.BookingCount)
		assert.True(t, updated.IsMember)
	})

	t.Run("membership is permanent once earned", func(t *testing.T) {
		updated, changed := accrueLoyalty(users.Loyalty{IsMember: true, BookingCount: 7}, singleTicketBooking("adult"))

		assert.True(t, changed)
		assert.True(t, updated.IsMember)
		assert.Equal(t, 8, updated.BookingCount)
	})

	t.Run("non-adult single ticket does not accrue", func(t *testing.T) {
		for _, category := range []string{"child", "senior"} {
			_, changed := accrueLoyalty(users.Loyalty{}, singleTicketBooking(category))
			assert.False(t, changed, category)
		}
	})

	t.Run("multi-ticket bookings do not accrue", func(t *testing.T) {
		booking := &bookings.Booking{
			Tickets: []bookings.Ticket{{Category: "adult"}, {Category: "adult"}},
		}

		_, changed := accrueLoyalty(users.Loyalty{}, booking)

		assert.False(t, changed)
	})
}
