package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/users"
)

type capturingProducer struct {
	published []*EmailNotification
}

func (c *capturingProducer) PublishNotification(_ context.Context, notification *EmailNotification) error {
	c.published = append(c.published, notification)
	return nil
}

func (c *capturingProducer) PublishBatchNotifications(_ context.Context, notifications []*EmailNotification) error {
	c.published = append(c.published, notifications...)
	return nil
}

func (c *capturingProducer) Close() error { return nil }

func (c *capturingProducer) HealthCheck(_ context.Context) error { return nil }

func TestPublisher_BookingConfirmed(t *testing.T) {
	producer := &capturingProducer{}
	publisher := NewPublisher(producer, "")

	user := &users.User{ID: uuid.New(), Email: "george@example.com", FirstName: "George", LastName: "Miller"}
	booking := &bookings.Booking{
		ID:      uuid.New(),
		EventID: uuid.New(),
		Event:   &events.Event{Title: "An Evening of Jazz"},
		Tickets: []bookings.Ticket{
			{Section: "STALLS", Row: "D", Seat: 7},
			{Section: "LBAL", Row: "A", Seat: 2},
		},
		Pricing: bookings.Pricing{Total: 90, Currency: "GBP"},
	}

	require.NoError(t, publisher.BookingConfirmed(context.Background(), booking, user))

	require.Len(t, producer.published, 1)
	notification := producer.published[0]

	assert.Equal(t, NotificationTypeBookingConfirmed, notification.Type)
	assert.Equal(t, NotificationPriorityMedium, notification.Priority)
	assert.Equal(t, "Booking Confirmed for An Evening of Jazz", notification.Subject)
	assert.Equal(t, user.ID.String(), notification.GetPartitionKey())
	assert.Equal(t, "STALLS D7, LBAL A2", notification.TemplateData["seats"])
	assert.Equal(t, "Victoria Hall", notification.TemplateData["venue"])
	assert.Equal(t, 90.0, notification.TemplateData["total"])
}

func TestPublisher_BookingConfirmedWithoutEvent(t *testing.T) {
	producer := &capturingProducer{}
	publisher := NewPublisher(producer, "")

	user := &users.User{ID: uuid.New(), Email: "george@example.com", FirstName: "George", LastName: "Miller"}
	booking := &bookings.Booking{
		ID:      uuid.New(),
		EventID: uuid.New(),
		Tickets: []bookings.Ticket{{Section: "STALLS", Row: "D", Seat: 7}},
		Pricing: bookings.Pricing{Total: 50, Currency: "GBP"},
	}

	require.NoError(t, publisher.BookingConfirmed(context.Background(), booking, user))

	require.Len(t, producer.published, 1)

	// Generic wording only when the event genuinely is not loaded.
	assert.Equal(t, "Booking Confirmed for your event", producer.published[0].Subject)
	assert.Equal(t, "your event", producer.published[0].TemplateData["event_title"])
}

func TestPublisher_Welcome(t *testing.T) {
	producer := &capturingProducer{}
	publisher := NewPublisher(producer, "Victoria Hall")

	user := &users.User{ID: uuid.New(), Email: "george@example.com", FirstName: "George", LastName: "Miller"}
	require.NoError(t, publisher.Welcome(context.Background(), user))

	require.Len(t, producer.published, 1)
	notification := producer.published[0]

	// The venue, never the SMTP sender name, titles the welcome email.
	assert.Equal(t, "Welcome to Victoria Hall", notification.Subject)
	assert.Equal(t, NotificationTypeWelcome, notification.Type)
	assert.Equal(t, NotificationPriorityLow, notification.Priority)
}

func TestPublisher_SendPasswordResetCode(t *testing.T) {
	producer := &capturingProducer{}
	publisher := NewPublisher(producer, "Victoria Hall")

	require.NoError(t, publisher.SendPasswordResetCode(context.Background(), "george@example.com", "George Miller", "123456"))

	require.Len(t, producer.published, 1)
	notification := producer.published[0]

	assert.Equal(t, NotificationTypePasswordReset, notification.Type)
	assert.Equal(t, NotificationPriorityHigh, notification.Priority)
	assert.Equal(t, "123456", notification.TemplateData["code"])
	assert.Equal(t, "george@example.com", notification.RecipientEmail)
}
