package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
)

type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
	to        string
}

// NewEmailService sends fleet notices through SendGrid. Without an API key or a fleet manager
// address the notices are only logged.
func NewEmailService(cfg config.SendGridConfig) EmailService {
	if cfg.APIKey == "" || cfg.FleetManagerEmail == "" {
		return &logEmailService{}
	}
	return newSendGridEmailService(sendgrid.NewSendClient(cfg.APIKey), cfg)
}

func newSendGridEmailService(client mailSender, cfg config.SendGridConfig) *sendGridEmailService {
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Rent-a-Car Fleet"
	}
	return &sendGridEmailService{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  fromName,
		to:        cfg.FleetManagerEmail,
	}
}

func (s *sendGridEmailService) SendMaintenanceNotice(ctx context.Context, plate string, reasons []string, today time.Time) error {
	subject, body := maintenanceNotice(plate, reasons, today)
	return s.send(ctx, "SendMaintenanceNotice", subject, body)
}

func (s *sendGridEmailService) SendMaintenanceReminder(ctx context.Context, plates []string, today time.Time) error {
	if len(plates) == 0 {
		return nil
	}
	subject, body := maintenanceReminder(plates, today)
	return s.send(ctx, "SendMaintenanceReminder", subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, operation, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.ExternalServiceCall("sendgrid", operation, "to", s.to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("Fleet Manager", s.to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	response, err := s.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", operation, err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", operation, err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", operation, nil, "status", response.StatusCode)
	return nil
}

type logEmailService struct{}

func (logEmailService) SendMaintenanceNotice(ctx context.Context, plate string, reasons []string, today time.Time) error {
	subject, _ := maintenanceNotice(plate, reasons, today)
	logger.InfoContext(ctx, "Email disabled, maintenance notice not sent", "subject", subject, "plate", plate, "reasons", reasons)
	return nil
}

func (logEmailService) SendMaintenanceReminder(ctx context.Context, plates []string, today time.Time) error {
	if len(plates) == 0 {
		return nil
	}
	subject, _ := maintenanceReminder(plates, today)
	logger.InfoContext(ctx, "Email disabled, maintenance reminder not sent", "subject", subject, "plates", plates)
	return nil
}

func maintenanceNotice(plate string, reasons []string, today time.Time) (string, string) {
	subject := fmt.Sprintf("Vehicle %s is due for maintenance", plate)
	body := fmt.Sprintf("Vehicle %s entered maintenance on %s.\n\nCriteria met:\n- %s\n\nRelease it once the service is registered.",
		plate, today.Format(time.DateOnly), strings.Join(reasons, "\n- "))
	return subject, body
}

func maintenanceReminder(plates []string, today time.Time) (string, string) {
	subject := fmt.Sprintf("%d vehicle(s) waiting in maintenance", len(plates))
	body := fmt.Sprintf("As of %s the following vehicles are still in maintenance:\n\n%s\n",
		today.Format(time.DateOnly), strings.Join(plates, "\n"))
	return subject, body
}
