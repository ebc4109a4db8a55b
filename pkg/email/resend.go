package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
	"github.com/kingzyphor/portfolio-api/pkg/httpclient"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const (
	// DefaultResendBaseURL is the public Resend REST endpoint
	DefaultResendBaseURL = "https://api.resend.com"

	resendService      = "resend"
	sendEmailOperation = "send_email"

	// resend-go prefixes most API error messages with this marker
	resendErrorPrefix = "[ERROR]: "
)

// ProviderError describes a non-2xx answer from the email provider.
// It unwraps to errors.ErrUpstream and to the error returned by the Resend SDK.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider returned %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{apperrors.ErrUpstream}
	}
	return []error{apperrors.ErrUpstream, e.Err}
}

// ResendSender delivers messages through the Resend SDK
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender. An empty baseURL uses DefaultResendBaseURL.
func NewResendSender(apiKey, baseURL string, timeout time.Duration) (*ResendSender, error) {
	if baseURL == "" {
		baseURL = DefaultResendBaseURL
	}
	// the SDK resolves "emails" relative to the base, so it must end with a slash
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid Resend base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}

	client := resend.NewCustomClient(&http.Client{
		Timeout:   timeout,
		Transport: statusTransport{base: http.DefaultTransport},
	}, apiKey)
	client.BaseURL = base

	return &ResendSender{client: client}, nil
}

// Send posts msg to Resend and returns the provider message ID
func (s *ResendSender) Send(ctx context.Context, msg Message) (id string, err error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		duration := metrics.MeasureDuration(start)
		metrics.EmailClientRequestDuration.WithLabelValues(sendEmailOperation, status).Observe(duration)
		metrics.EmailClientRequestTotal.WithLabelValues(sendEmailOperation, status).Inc()
		logger.LogAPICall(ctx, resendService, sendEmailOperation, status, duration, zap.String("message_id", id))
	}()

	var statusCode int
	sent, err := s.client.Emails.SendWithContext(withStatusRecorder(ctx, &statusCode), &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	})

	switch {
	case err == nil:
		return sent.Id, nil
	case statusCode == 0:
		return "", apperrors.UpstreamError(resendService, err)
	case httpclient.IsSuccess(statusCode):
		// accepted, only the response body was unreadable
		logger.Warn("Failed to decode email provider response", zap.Error(err))
		return "", nil
	default:
		return "", newProviderError(statusCode, err)
	}
}

func newProviderError(statusCode int, err error) *ProviderError {
	message := err.Error()
	var rateLimited *resend.RateLimitError
	if errors.As(err, &rateLimited) {
		message = rateLimited.Message
	}
	message = strings.TrimSpace(strings.TrimPrefix(message, resendErrorPrefix))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &ProviderError{StatusCode: statusCode, Message: message, Err: err}
}

type statusKey struct{}

// withStatusRecorder makes statusTransport store the response status in dst.
// The SDK's errors drop the status, which the circuit breaker needs.
func withStatusRecorder(ctx context.Context, dst *int) context.Context {
	return context.WithValue(ctx, statusKey{}, dst)
}

type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil {
		if dst, ok := req.Context().Value(statusKey{}).(*int); ok {
			*dst = resp.StatusCode
		}
	}
	return resp, err
}
