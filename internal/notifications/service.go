package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"cinebook/internal/shared/config"
)

// Service is the booking-facing entry point for notifications.
type Service interface {
	NotifyBookingConfirmed(ctx context.Context, userID uuid.UUID, email, name string,
		bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error
	NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, email, name string,
		bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

const defaultConsumerWorkers = 3

type service struct {
	producer NotificationProducer
	consumer NotificationConsumer

	isRunning bool
	mu        sync.RWMutex
}

// NewService wires the Kafka producer and consumer. The email sender
// falls back to log delivery when SMTP is not configured.
func NewService(cfg config.KafkaConfig) (Service, error) {
	producer, err := NewKafkaNotificationProducer(NewKafkaProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	var sender EmailSender
	smtpConfig := NewSMTPConfigFromEnv()
	smtpSender, err := NewSMTPEmailSender(smtpConfig)
	if err != nil {
		log.Printf("📧 SMTP not configured (%v), falling back to log delivery", err)
		sender = NewLogEmailSender()
	} else {
		sender = smtpSender
	}

	consumer, err := NewKafkaNotificationConsumer(NewConsumerConfig(cfg), sender)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &service{
		producer: producer,
		consumer: consumer,
	}, nil
}

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := s.consumer.StartConsumers(ctx, defaultConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start notification consumers: %w", err)
	}

	s.isRunning = true
	log.Println("📧 Notification service started")
	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if err := s.consumer.Stop(); err != nil {
		log.Printf("📧 Error stopping notification consumer: %v", err)
	}
	if err := s.producer.Close(); err != nil {
		log.Printf("📧 Error closing notification producer: %v", err)
	}

	s.isRunning = false
	log.Println("📧 Notification service stopped")
	return nil
}

func (s *service) HealthCheck(ctx context.Context) error {
	if err := s.producer.HealthCheck(ctx); err != nil {
		return err
	}
	return s.consumer.HealthCheck(ctx)
}

func (s *service) NotifyBookingConfirmed(ctx context.Context, userID uuid.UUID, email, name string,
	bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error {

	notification := NewEmailNotification(NotificationTypeBookingConfirmed)
	notification.RecipientID = userID
	notification.RecipientEmail = email
	notification.RecipientName = name
	notification.Subject = "Your CineBook tickets are confirmed 🎬"
	notification.BookingID = &bookingID
	notification.ShowtimeID = &showtimeID
	notification.TemplateData = templateData

	return s.producer.PublishNotification(ctx, notification)
}

func (s *service) NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, email, name string,
	bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error {

	notification := NewEmailNotification(NotificationTypeBookingCancelled)
	notification.RecipientID = userID
	notification.RecipientEmail = email
	notification.RecipientName = name
	notification.Subject = "Your CineBook booking was cancelled"
	notification.BookingID = &bookingID
	notification.ShowtimeID = &showtimeID
	notification.TemplateData = templateData

	return s.producer.PublishNotification(ctx, notification)
}

// noopService satisfies Service when Kafka is disabled.
type noopService struct{}

// NewNoopService returns a Service that drops notifications. Used when
// KAFKA_ENABLED is false.
func NewNoopService() Service {
	return &noopService{}
}

func (n *noopService) NotifyBookingConfirmed(ctx context.Context, userID uuid.UUID, email, name string,
	bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error {
	return nil
}

func (n *noopService) NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, email, name string,
	bookingID, showtimeID uuid.UUID, templateData map[string]interface{}) error {
	return nil
}

func (n *noopService) Start(ctx context.Context) error  { return nil }
func (n *noopService) Stop() error                      { return nil }
func (n *noopService) HealthCheck(ctx context.Context) error { return nil }
