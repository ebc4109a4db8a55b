package services

import (
	"context"

	"github.com/kingzyphor/portfolio-api/config"
	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/pkg/email"
	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	"github.com/kingzyphor/portfolio-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ContactService relays contact form submissions to the site owner by email
type ContactService struct {
	sender email.Sender
	from   string
	to     string
}

// NewContactService creates a new contact service instance
func NewContactService(sender email.Sender, cfg config.EmailConfig) *ContactService {
	return &ContactService{
		sender: sender,
		from:   cfg.From,
		to:     cfg.To,
	}
}

// SendContactMessage emails req to the configured recipient. Provider failures are
// logged here and returned as ErrUpstream without further detail for the caller.
func (s *ContactService) SendContactMessage(ctx context.Context, req *models.ContactRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, "ContactService.SendContactMessage",
		attribute.Int("contact.message_length", len(req.Message)))
	defer func() { tracing.EndSpan(span, err) }()

	msg := email.Message{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: req.Email,
		Subject: req.Subject(),
		Text:    req.Body(),
	}

	messageID, err := s.sender.Send(ctx, msg)
	if err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("send_failed").Inc()
		logger.LogError(err, "Failed to send contact message")
		return apperrors.UpstreamError("email", err)
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact message sent", zap.String("message_id", messageID))
	return nil
}
