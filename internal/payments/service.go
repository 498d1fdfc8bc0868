package payments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"boxoffice/internal/bookings"
	"boxoffice/internal/shared/errs"
	"boxoffice/internal/users"
	"boxoffice/pkg/logger"
)

// BookingStore is the slice of the bookings repository the payment
// workflow needs. The paid transition goes through MarkPaid's
// compare-and-swap, never through a plain save.
type BookingStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*users.User, error)
	SaveLoyalty(ctx context.Context, id uuid.UUID, loyalty users.Loyalty) error
}

// Notifier publishes the booking confirmation. Failures are logged and
// swallowed; payment success never depends on notification delivery.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *bookings.Booking, user *users.User) error
}

type Service interface {
	PayBooking(ctx context.Context, userID, bookingID uuid.UUID) (*PaymentResult, error)
}

type service struct {
	bookings BookingStore
	users    UserStore
	notifier Notifier
	log      *logger.Logger
}

func NewService(bookingStore BookingStore, userStore UserStore, notifier Notifier) Service {
	return &service{
		bookings: bookingStore,
		users:    userStore,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

// PayBooking settles a pending booking with the mock payment provider.
// Paying an already-paid booking is a no-op success, so client retries
// are safe.
func (s *service) PayBooking(ctx context.Context, userID, bookingID uuid.UUID) (*PaymentResult, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errs.Forbidden("you do not have access to this booking")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if booking.IsPaid() {
		return &PaymentResult{Booking: booking, Loyalty: user.Loyalty, AlreadyPaid: true}, nil
	}
	if !booking.Status.CanBePaid() {
		return nil, errs.BadRequest("booking cannot be paid")
	}

	changed, err := s.bookings.MarkPaid(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Lost the race. Re-read: a concurrent payment makes this call an
		// idempotent success, anything else is a real state conflict.
		booking, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking.IsPaid() {
			return &PaymentResult{Booking: booking, Loyalty: user.Loyalty, AlreadyPaid: true}, nil
		}
		return nil, errs.Conflict("booking cannot be paid")
	}

	booking.MarkPaid()

	loyalty := s.applyLoyalty(ctx, user, booking)

	s.notify(ctx, booking, user)

	s.log.LogBookingPaid(ctx, booking.ID.String(), booking.EventID.String(), userID.String())

	return &PaymentResult{Booking: booking, Loyalty: loyalty}, nil
}

// applyLoyalty persists the accrual when the booking qualifies. A failed
// save does not fail the payment; the stored snapshot stays authoritative.
func (s *service) applyLoyalty(ctx context.Context, user *users.User, booking *bookings.Booking) users.Loyalty {
	updated, changed := accrueLoyalty(user.Loyalty, booking)
	if !changed {
		return user.Loyalty
	}

	if err := s.users.SaveLoyalty(ctx, user.ID, updated); err != nil {
		s.log.Warn("failed to save loyalty accrual",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
		return user.Loyalty
	}

	user.Loyalty = updated
	return updated
}

func (s *service) notify(ctx context.Context, booking *bookings.Booking, user *users.User) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BookingConfirmed(ctx, booking, user); err != nil {
		s.log.Warn("failed to publish booking confirmation",
			slog.String("booking_id", booking.ID.String()),
			slog.Any("error", err),
		)
	}
}
