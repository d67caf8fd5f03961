package notifications

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EmailSender delivers a notification to its recipient.
type EmailSender interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// NewSMTPConfigFromEnv creates SMTP config from environment variables
func NewSMTPConfigFromEnv() *SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	timeout, _ := time.ParseDuration(os.Getenv("SMTP_TIMEOUT"))
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		FromName:  "CineBook",
		Timeout:   timeout,
	}
}

// SMTPEmailSender sends plain-text booking emails over SMTP.
type SMTPEmailSender struct {
	config *SMTPConfig
}

func NewSMTPEmailSender(config *SMTPConfig) (*SMTPEmailSender, error) {
	if config == nil {
		return nil, fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("SMTP from email is required")
	}
	return &SMTPEmailSender{config: config}, nil
}

func (s *SMTPEmailSender) SendNotification(ctx context.Context, notification *EmailNotification) error {
	if notification.RecipientEmail == "" {
		return fmt.Errorf("notification has no recipient email")
	}

	body := renderBody(notification)
	msg := buildMessage(s.config.FromName, s.config.FromEmail, notification.RecipientEmail, notification.Subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", notification.RecipientEmail, err)
	}

	return nil
}

func buildMessage(fromName, fromEmail, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, fromEmail))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

func renderBody(notification *EmailNotification) string {
	var sb strings.Builder

	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		sb.WriteString(fmt.Sprintf("Hi %s,\n\nYour booking is confirmed!\n\n", notification.RecipientName))
	case NotificationTypeBookingCancelled:
		sb.WriteString(fmt.Sprintf("Hi %s,\n\nYour booking has been cancelled.\n\n", notification.RecipientName))
	default:
		sb.WriteString(fmt.Sprintf("Hi %s,\n\n", notification.RecipientName))
	}

	keys := make([]string, 0, len(notification.TemplateData))
	for k := range notification.TemplateData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := strings.ReplaceAll(k, "_", " ")
		sb.WriteString(fmt.Sprintf("%s: %v\n", strings.Title(label), notification.TemplateData[k]))
	}

	sb.WriteString("\nThank you for booking with CineBook.\n")
	return sb.String()
}

// LogEmailSender writes notifications to the application log. Used in
// development when no SMTP host is configured.
type LogEmailSender struct{}

func NewLogEmailSender() *LogEmailSender {
	return &LogEmailSender{}
}

func (s *LogEmailSender) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [dev] %s -> %s: %s", notification.Type, notification.RecipientEmail, notification.Subject)
	return nil
}
