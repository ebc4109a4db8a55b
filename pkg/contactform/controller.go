// Package contactform drives a contact form against the portfolio API: it holds
// the field values, submits them to the relay endpoint and tracks the status
// message shown to the visitor.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kingzyphor/portfolio-api/pkg/httpclient"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

// DefaultRevertDelay is how long a success message stays up before the form returns to idle
const DefaultRevertDelay = 5 * time.Second

// Status is the submission state of the form
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Field names a form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

var (
	ErrIncompleteForm   = errors.New("name, email and message are required")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrUnknownField     = errors.New("unknown form field")
)

// SubmitError is returned when the relay rejects a submission or cannot be reached.
// StatusCode is 0 for transport failures.
type SubmitError struct {
	StatusCode int
	Err        error
}

func (e *SubmitError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("contact submission failed: %v", e.Err)
	}
	return fmt.Sprintf("contact submission failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Form is the payload posted to the relay endpoint
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every field has a non-blank value
func (f Form) Complete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Message) != ""
}

// Timer is the part of *time.Timer the controller needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Controller
type Option func(*Controller)

// WithAfterFunc replaces the clock used for the success revert
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Controller) {
		c.afterFunc = fn
	}
}

// WithRevertDelay changes how long the success status is shown
func WithRevertDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.revertDelay = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller is safe for concurrent use
type Controller struct {
	endpoint    string
	client      httpclient.Client
	afterFunc   AfterFunc
	revertDelay time.Duration
	log         *zap.Logger

	mu     sync.Mutex
	form   Form
	status Status
	seq    uint64
	revert Timer
}

// New creates a controller posting to endpoint, e.g. https://example.com/api/contact
func New(endpoint string, client httpclient.Client, opts ...Option) *Controller {
	c := &Controller{
		endpoint:    endpoint,
		client:      client,
		revertDelay: DefaultRevertDelay,
		log:         logger.Log,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField sets one input. Values are stored as typed.
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldName:
		c.form.Name = value
	case FieldEmail:
		c.form.Email = value
	case FieldMessage:
		c.form.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Submit posts the form to the relay endpoint and updates the status with the outcome.
// Incomplete forms and overlapping submissions are refused without touching the status.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if !c.form.Complete() {
		c.mu.Unlock()
		return ErrIncompleteForm
	}
	c.stopRevertLocked()
	c.status = StatusSending
	c.seq++
	seq := c.seq
	form := c.form
	c.mu.Unlock()

	statusCode, err := c.post(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status = StatusError
		c.log.Warn("Contact form submission failed",
			zap.String("endpoint", c.endpoint),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		)
		return &SubmitError{StatusCode: statusCode, Err: err}
	}

	c.status = StatusSuccess
	c.form = Form{}
	c.revert = c.afterFunc(c.revertDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.seq == seq && c.status == StatusSuccess {
			c.status = StatusIdle
			c.revert = nil
		}
	})
	return nil
}

func (c *Controller) post(ctx context.Context, form Form) (int, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if !httpclient.IsSuccess(resp.StatusCode) {
		return resp.StatusCode, relayError(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}

// relayError extracts the "error" field of a relay response, falling back to the status text
func relayError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	return errors.New(strings.ToLower(http.StatusText(resp.StatusCode)))
}

func (c *Controller) stopRevertLocked() {
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

// Status returns the current submission status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Form returns a copy of the current field values
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// StatusText is the message shown under the form
func (c *Controller) StatusText() string {
	return StatusText(c.Status())
}

// SubmitLabel is the caption of the submit button
func (c *Controller) SubmitLabel() string {
	if c.Status() == StatusSending {
		return "Sending..."
	}
	return "Send Message"
}

// Close stops a pending success revert
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopRevertLocked()
}

// StatusText maps a status to its visitor-facing message
func StatusText(s Status) string {
	switch s {
	case StatusSending:
		return "⏳ Sending your message..."
	case StatusSuccess:
		return "✅ Message sent successfully!"
	case StatusError:
		return "❌ Something went wrong. Please try again."
	default:
		return ""
	}
}
