package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"boxoffice/internal/bookings"
	"boxoffice/internal/users"
)

// Publisher is the application-facing API: it turns domain events into
// email notifications and queues them. It satisfies the payment workflow's
// notifier and the auth reset-code sender.
type Publisher struct {
	producer NotificationProducer
	venue    string
}

func NewPublisher(producer NotificationProducer, venue string) *Publisher {
	if venue == "" {
		venue = "Victoria Hall"
	}
	return &Publisher{
		producer: producer,
		venue:    venue,
	}
}

// BookingConfirmed queues the post-payment confirmation email.
func (p *Publisher) BookingConfirmed(ctx context.Context, booking *bookings.Booking, user *users.User) error {
	eventTitle := "your event"
	if booking.Event != nil {
		eventTitle = booking.Event.Title
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(user.ID, user.Email, user.FullName()).
		WithBookingContext(booking.ID).
		WithEventContext(booking.EventID).
		WithSubject(fmt.Sprintf("Booking Confirmed for %s", eventTitle)).
		WithTemplateData(map[string]interface{}{
			"event_title": eventTitle,
			"seats":       formatSeats(booking.Tickets),
			"total":       booking.Pricing.Total,
			"currency":    booking.Pricing.Currency,
			"venue":       p.venue,
		}).
		Build()

	return p.producer.PublishNotification(ctx, notification)
}

// SendPasswordResetCode queues the reset-code email.
func (p *Publisher) SendPasswordResetCode(ctx context.Context, email, name, code string) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypePasswordReset).
		WithRecipient(uuid.Nil, email, name).
		WithSubject("Password reset request").
		WithTemplateData(map[string]interface{}{
			"code": code,
		}).
		Build()

	return p.producer.PublishNotification(ctx, notification)
}

// Welcome queues the post-registration email.
func (p *Publisher) Welcome(ctx context.Context, user *users.User) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeWelcome).
		WithRecipient(user.ID, user.Email, user.FullName()).
		WithSubject(fmt.Sprintf("Welcome to %s", p.venue)).
		Build()

	return p.producer.PublishNotification(ctx, notification)
}

func formatSeats(tickets []bookings.Ticket) string {
	parts := make([]string, 0, len(tickets))
	for _, t := range tickets {
		parts = append(parts, fmt.Sprintf("%s %s%d", t.Section, t.Row, t.Seat))
	}
	return strings.Join(parts, ", ")
}
