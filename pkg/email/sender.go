package email

import (
	"context"
	"strings"

	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

// Sender is implemented by every transactional email provider.
type Sender interface {
	// Send delivers msg and returns the provider's message ID when it has one.
	Send(ctx context.Context, msg Message) (string, error)
}

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Validate checks the fields every provider requires. Failures wrap errors.ErrInvalidInput.
func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return apperrors.InvalidInputError("from", "sender is empty")
	}
	if len(m.To) == 0 {
		return apperrors.InvalidInputError("to", "no recipients")
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return apperrors.InvalidInputError("to", "empty recipient")
		}
	}
	if m.Subject == "" {
		return apperrors.InvalidInputError("subject", "subject is empty")
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them.
// Used in development when no provider key is configured.
type LogSender struct{}

// NewLogSender creates a sender that only logs
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message envelope and reports success
func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	logger.Info("Email delivery skipped (log sender)",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("text_length", len(msg.Text)))
	return "", nil
}
