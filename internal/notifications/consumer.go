package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type NotificationConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

// ConsumerConfig carries the tunables for the email delivery workers. The
// retry budget is NOT here: each EmailNotification carries its own MaxRetries,
// set by the publisher per notification type, and the worker honours that.
type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	Heartbeat         time.Duration
	MaxProcessingTime time.Duration
	RetryBackoff      time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "boxoffice-notification-workers",
		Topics:            []string{"notifications"},
		SessionTimeout:    30 * time.Second,
		Heartbeat:         3 * time.Second,
		MaxProcessingTime: 5 * time.Minute,
		RetryBackoff:      time.Second,
	}
}

type KafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	// Booking confirmations are only useful near real time, so a fresh
	// consumer group starts at the newest offset rather than replaying
	// stale notifications.
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaNotificationConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (knc *KafkaNotificationConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d email delivery workers for topics: %v", numWorkers, knc.config.Topics)

	go knc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		worker := &deliveryWorker{
			id:           i,
			emailService: knc.emailService,
			retryBackoff: knc.config.RetryBackoff,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			knc.runWorker(ctx, worker)
		}()
	}

	log.Printf("📥 All %d email delivery workers started", numWorkers)
	return nil
}

func (knc *KafkaNotificationConsumer) runWorker(ctx context.Context, worker *deliveryWorker) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", worker.id)
			return
		default:
			if err := knc.consumerGroup.Consume(ctx, knc.config.Topics, worker); err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", worker.id, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (knc *KafkaNotificationConsumer) handleErrors() {
	for err := range knc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (knc *KafkaNotificationConsumer) Stop() error {
	log.Println("📥 Stopping notification consumer...")
	knc.cancel()

	if err := knc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Notification consumer stopped")
	return nil
}

func (knc *KafkaNotificationConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-knc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if knc.emailService == nil {
			return fmt.Errorf("email service not configured")
		}
		return nil
	}
}

// deliveryWorker is a sarama.ConsumerGroupHandler that turns queued
// EmailNotifications into SMTP deliveries.
type deliveryWorker struct {
	id           int
	emailService EmailService
	retryBackoff time.Duration
}

func (w *deliveryWorker) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: consumer group session started", w.id)
	return nil
}

func (w *deliveryWorker) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: consumer group session ended", w.id)
	return nil
}

func (w *deliveryWorker) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := w.handleRecord(session.Context(), message); err != nil {
				log.Printf("📥 Worker %d: dropping notification from partition %d offset %d: %v",
					w.id, message.Partition, message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (w *deliveryWorker) handleRecord(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification EmailNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	if notification.IsExpired() {
		log.Printf("📥 Worker %d: notification %s expired, skipping", w.id, notification.ID)
		return nil
	}

	if err := w.deliver(ctx, &notification); err != nil {
		return err
	}

	log.Printf("📧 Worker %d: email notification sent to %s", w.id, notification.RecipientEmail)
	return nil
}

// deliver attempts the send until the notification's own retry budget is
// spent, backing off a little longer before each retry.
func (w *deliveryWorker) deliver(ctx context.Context, notification *EmailNotification) error {
	backoff := w.retryBackoff

	for {
		notification.Status = NotificationStatusSending

		err := w.emailService.SendNotification(ctx, notification)
		if err == nil {
			notification.MarkSent()
			return nil
		}

		notification.MarkFailed(err)
		notification.IncrementRetry()
		if notification.Status != NotificationStatusRetrying {
			return fmt.Errorf("giving up on notification %s after %d attempts: %w",
				notification.ID, notification.RetryCount, err)
		}

		log.Printf("📥 Worker %d: attempt %d/%d for notification %s failed, retrying in %v",
			w.id, notification.RetryCount, notification.MaxRetries, notification.ID, backoff)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
