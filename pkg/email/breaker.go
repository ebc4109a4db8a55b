package email

import (
	"context"
	"errors"
	"net/http"

	"github.com/kingzyphor/portfolio-api/pkg/circuitbreaker"
	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSender fails fast while the wrapped provider keeps failing.
// Only outages trip it: provider 4xx answers and invalid messages are the caller's problem.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSender wraps next with a breaker built from cfg. IsSuccessful is always overridden.
func NewBreakerSender(next Sender, cfg circuitbreaker.Config) *BreakerSender {
	cfg.IsSuccessful = countsAsHealthy
	return &BreakerSender{next: next, cb: circuitbreaker.New(cfg)}
}

func (s *BreakerSender) Send(ctx context.Context, msg Message) (string, error) {
	id, err := circuitbreaker.Execute(s.cb, func() (string, error) {
		return s.next.Send(ctx, msg)
	})
	if err != nil && circuitbreaker.IsRejected(err) {
		metrics.EmailClientRequestTotal.WithLabelValues(sendEmailOperation, "rejected").Inc()
		logger.Warn("Email send rejected by circuit breaker",
			zap.String("breaker", s.cb.Name()),
			zap.String("state", s.State().String()))
		return "", apperrors.UpstreamError(s.cb.Name(), err)
	}
	return id, err
}

// State reports the breaker state
func (s *BreakerSender) State() gobreaker.State {
	return s.cb.State()
}

func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode < http.StatusInternalServerError && pe.StatusCode != http.StatusTooManyRequests
	}
	return errors.Is(err, apperrors.ErrInvalidInput)
}
