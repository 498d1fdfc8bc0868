package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/shared/errs"
	"boxoffice/internal/users"
)

type fakeBookingStore struct {
	bookings map[uuid.UUID]*bookings.Booking

	// markPaidResult overrides the normal CAS when set, simulating a
	// lost race against a concurrent payment.
	markPaidOverride func(id uuid.UUID) (bool, error)
}

func (f *fakeBookingStore) GetByID(_ context.Context, id uuid.UUID) (*bookings.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, errs.NotFound("booking not found")
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingStore) MarkPaid(_ context.Context, id uuid.UUID) (bool, error) {
	if f.markPaidOverride != nil {
		return f.markPaidOverride(id)
	}
	booking, ok := f.bookings[id]
	if !ok || !booking.Status.CanBePaid() {
		return false, nil
	}
	booking.Status = bookings.StatusPaid
	return true, nil
}

type fakeUserStore struct {
	users   map[uuid.UUID]*users.User
	saveErr error
	saved   *users.Loyalty
}

func (f *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*users.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) SaveLoyalty(_ context.Context, id uuid.UUID, loyalty users.Loyalty) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users[id].Loyalty = loyalty
	f.saved = &loyalty
	return nil
}

type fakeNotifier struct {
	calls    int
	err      error
	lastSent *bookings.Booking
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, booking *bookings.Booking, _ *users.User) error {
	f.calls++
	f.lastSent = booking
	return f.err
}

func paymentFixture(t *testing.T, status bookings.Status, tickets []bookings.Ticket) (*fakeBookingStore, *fakeUserStore, *fakeNotifier, uuid.UUID, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	bookingID := uuid.New()

	eventID := uuid.New()
	bookingStore := &fakeBookingStore{bookings: map[uuid.UUID]*bookings.Booking{
		bookingID: {
			ID:      bookingID,
			UserID:  userID,
			EventID: eventID,
			Status:  status,
			Tickets: tickets,
			Pricing: bookings.Pricing{Total: 50, Currency: "GBP"},
			Event:   &events.Event{ID: eventID, Title: "An Evening of Jazz"},
		},
	}}
	userStore := &fakeUserStore{users: map[uuid.UUID]*users.User{
		userID: {ID: userID, Email: "george@example.com"},
	}}
	notifier := &fakeNotifier{}

	return bookingStore, userStore, notifier, userID, bookingID
}

func adultTicket() []bookings.Ticket {
	return []bookings.Ticket{{Category: "adult"}}
}

func TestService_PayBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pays a pending booking and accrues loyalty", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.False(t, result.AlreadyPaid)
		assert.True(t, result.Booking.IsPaid())
		assert.NotNil(t, result.Booking.PaidAt)
		assert.Equal(t, 1, result.Loyalty.BookingCount)
		assert.Equal(t, 1, notifier.calls)
		require.NotNil(t, userStore.saved)
		assert.Equal(t, 1, userStore.saved.BookingCount)

		// The confirmation email names the event, so the booking handed to
		// the notifier must carry it.
		require.NotNil(t, notifier.lastSent)
		require.NotNil(t, notifier.lastSent.Event)
		assert.Equal(t, "An Evening of Jazz", notifier.lastSent.Event.Title)
	})

	t.Run("third qualifying payment grants membership", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		userStore.users[userID].Loyalty = users.Loyalty{BookingCount: 2}
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.Loyalty.IsMember)
		assert.Equal(t, 3, result.Loyalty.BookingCount)
	})

	t.Run("multi-ticket booking pays without accrual", func(t *testing.T) {
		tickets := []bookings.Ticket{{Category: "adult"}, {Category: "child"}}
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, tickets)
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.Booking.IsPaid())
		assert.Equal(t, 0, result.Loyalty.BookingCount)
		assert.Nil(t, userStore.saved)
	})

	t.Run("paying an already paid booking is an idempotent no-op", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPaid, adultTicket())
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.AlreadyPaid)
		assert.Equal(t, 0, notifier.calls)
		assert.Nil(t, userStore.saved)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		bookingStore, userStore, notifier, _, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		svc := NewService(bookingStore, userStore, notifier)

		_, err := svc.PayBooking(ctx, uuid.New(), bookingID)

		require.Error(t, err)
		assert.Equal(t, 403, errs.HTTPStatus(err))
	})

	t.Run("cancelled booking cannot be paid", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusCancelled, adultTicket())
		svc := NewService(bookingStore, userStore, notifier)

		_, err := svc.PayBooking(ctx, userID, bookingID)

		require.Error(t, err)
		assert.Equal(t, 400, errs.HTTPStatus(err))
	})

	t.Run("losing the race to a concurrent payment succeeds idempotently", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		bookingStore.markPaidOverride = func(id uuid.UUID) (bool, error) {
			// The other payment wins between our read and the swap.
			bookingStore.bookings[id].Status = bookings.StatusPaid
			return false, nil
		}
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.AlreadyPaid)
		assert.Equal(t, 0, notifier.calls)
	})

	t.Run("failed swap with no concurrent payment is a conflict", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		bookingStore.markPaidOverride = func(id uuid.UUID) (bool, error) {
			bookingStore.bookings[id].Status = bookings.StatusCancelled
			return false, nil
		}
		svc := NewService(bookingStore, userStore, notifier)

		_, err := svc.PayBooking(ctx, userID, bookingID)

		require.Error(t, err)
		assert.Equal(t, 409, errs.HTTPStatus(err))
	})

	t.Run("loyalty save failure does not fail the payment", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		userStore.saveErr = errors.New("connection reset")
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.Booking.IsPaid())
		// Snapshot stays pre-accrual when the save is lost.
		assert.Equal(t, 0, result.Loyalty.BookingCount)
	})

	t.Run("notifier failure is swallowed", func(t *testing.T) {
		bookingStore, userStore, notifier, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		notifier.err = errors.New("broker unavailable")
		svc := NewService(bookingStore, userStore, notifier)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.Booking.IsPaid())
		assert.Equal(t, 1, notifier.calls)
	})

	t.Run("nil notifier is tolerated", func(t *testing.T) {
		bookingStore, userStore, _, userID, bookingID := paymentFixture(t, bookings.StatusPending, adultTicket())
		svc := NewService(bookingStore, userStore, nil)

		result, err := svc.PayBooking(ctx, userID, bookingID)
		require.NoError(t, err)

		assert.True(t, result.Booking.IsPaid())
	})
}
