package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyEmailService struct {
	failures int
	sends    int
}

func (f *flakyEmailService) SendNotification(_ context.Context, _ *EmailNotification) error {
	f.sends++
	if f.sends <= f.failures {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (f *flakyEmailService) SendHTML(_ context.Context, _, _, _, _ string) error {
	return nil
}

func consumerMessage(payload []byte) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     "notifications",
		Partition: 0,
		Offset:    42,
		Value:     payload,
	}
}

func queuedNotification(maxRetries int) *EmailNotification {
	return &EmailNotification{
		ID:             uuid.New(),
		Type:           NotificationTypeBookingConfirmed,
		RecipientID:    uuid.New(),
		RecipientEmail: "holder@example.com",
		Subject:        "Booking Confirmed for An Evening of Jazz",
		Status:         NotificationStatusPending,
		MaxRetries:     maxRetries,
		CreatedAt:      time.Now(),
	}
}

func TestDeliveryWorkerRetriesWithinNotificationBudget(t *testing.T) {
	email := &flakyEmailService{failures: 2}
	worker := &deliveryWorker{id: 0, emailService: email, retryBackoff: time.Millisecond}

	notification := queuedNotification(3)
	err := worker.deliver(context.Background(), notification)
	require.NoError(t, err)

	assert.Equal(t, 3, email.sends)
	assert.Equal(t, NotificationStatusSent, notification.Status)
	assert.Equal(t, 2, notification.RetryCount)
	require.NotNil(t, notification.SentAt)
}

func TestDeliveryWorkerGivesUpWhenBudgetSpent(t *testing.T) {
	email := &flakyEmailService{failures: 10}
	worker := &deliveryWorker{id: 0, emailService: email, retryBackoff: time.Millisecond}

	notification := queuedNotification(2)
	err := worker.deliver(context.Background(), notification)
	require.Error(t, err)

	// The budget rides on the message, so two retries means two sends total.
	assert.Equal(t, 2, email.sends)
	assert.Equal(t, NotificationStatusExpired, notification.Status)
	require.NotNil(t, notification.LastError)
	assert.Contains(t, *notification.LastError, "connection refused")
}

func TestDeliveryWorkerSkipsExpiredNotifications(t *testing.T) {
	email := &flakyEmailService{}
	worker := &deliveryWorker{id: 0, emailService: email, retryBackoff: time.Millisecond}

	notification := queuedNotification(3)
	expired := time.Now().Add(-time.Minute)
	notification.ExpiresAt = &expired

	payload, err := notification.ToJSON()
	require.NoError(t, err)

	err = worker.handleRecord(context.Background(), consumerMessage(payload))
	require.NoError(t, err)
	assert.Zero(t, email.sends)
}

func TestDeliveryWorkerRejectsMalformedPayload(t *testing.T) {
	email := &flakyEmailService{}
	worker := &deliveryWorker{id: 0, emailService: email, retryBackoff: time.Millisecond}

	err := worker.handleRecord(context.Background(), consumerMessage([]byte("not json")))
	require.Error(t, err)
	assert.Zero(t, email.sends)
}
