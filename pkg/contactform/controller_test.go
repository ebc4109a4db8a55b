package contactform_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kingzyphor/portfolio-api/pkg/contactform"
	"github.com/kingzyphor/portfolio-api/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeClock records scheduled callbacks so tests fire them explicitly
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) contactform.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the i-th scheduled callback, the way the runtime would even after a late Stop
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.fn()
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func fillForm(t *testing.T, c *contactform.Controller, name, email, message string) {
	t.Helper()
	require.NoError(t, c.UpdateField(contactform.FieldName, name))
	require.NoError(t, c.UpdateField(contactform.FieldEmail, email))
	require.NoError(t, c.UpdateField(contactform.FieldMessage, message))
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "", contactform.StatusText(contactform.StatusIdle))
	assert.Equal(t, "⏳ Sending your message...", contactform.StatusText(contactform.StatusSending))
	assert.Equal(t, "✅ Message sent successfully!", contactform.StatusText(contactform.StatusSuccess))
	assert.Equal(t, "❌ Something went wrong. Please try again.", contactform.StatusText(contactform.StatusError))
}

func TestController_UpdateField(t *testing.T) {
	c := contactform.New("http://unused", new(MockHTTPClient))

	fillForm(t, c, "Ada", "not-validated", "  Hello  ")
	assert.Equal(t, contactform.Form{Name: "Ada", Email: "not-validated", Message: "  Hello  "}, c.Form())

	err := c.UpdateField(contactform.Field("phone"), "123")
	assert.ErrorIs(t, err, contactform.ErrUnknownField)
	assert.Equal(t, contactform.StatusIdle, c.Status())
}

func TestController_Submit_Success(t *testing.T) {
	var received contactform.Form
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second), contactform.WithAfterFunc(clock.AfterFunc))
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, contactform.Form{Name: "Ada", Email: "ada@example.com", Message: "Hello"}, received)
	assert.Equal(t, contactform.StatusSuccess, c.Status())
	assert.Equal(t, "✅ Message sent successfully!", c.StatusText())
	assert.Equal(t, contactform.Form{}, c.Form(), "fields are cleared after success")

	require.Len(t, clock.timers, 1)
	assert.Equal(t, contactform.DefaultRevertDelay, clock.timers[0].delay)

	clock.fire(0)
	assert.Equal(t, contactform.StatusIdle, c.Status())
	assert.Equal(t, "", c.StatusText())
}

func TestController_Submit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to send message"}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second), contactform.WithAfterFunc(clock.AfterFunc))
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	err := c.Submit(context.Background())

	var submitErr *contactform.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, http.StatusInternalServerError, submitErr.StatusCode)
	assert.Contains(t, submitErr.Error(), "Failed to send message")
	assert.Equal(t, contactform.StatusError, c.Status())
	assert.Equal(t, "❌ Something went wrong. Please try again.", c.StatusText())
	assert.Equal(t, contactform.Form{Name: "Ada", Email: "ada@example.com", Message: "Hello"}, c.Form(), "fields are kept for retry")
	assert.Empty(t, clock.timers, "error status does not revert")
}

func TestController_Submit_NonJSONErrorBody(t *testing.T) {
	mockClient := new(MockHTTPClient)
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(http.NoBody),
	}, nil).Once()

	c := contactform.New("http://relay.test/api/contact", mockClient)
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	err := c.Submit(context.Background())

	var submitErr *contactform.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, http.StatusBadGateway, submitErr.StatusCode)
	assert.Contains(t, submitErr.Error(), "bad gateway")
	mockClient.AssertExpectations(t)
}

func TestController_Submit_TransportError(t *testing.T) {
	mockClient := new(MockHTTPClient)
	transportErr := errors.New("connection refused")
	mockClient.On("Do", mock.Anything).Return(nil, transportErr).Once()

	c := contactform.New("http://relay.test/api/contact", mockClient)
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	err := c.Submit(context.Background())

	var submitErr *contactform.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, 0, submitErr.StatusCode)
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, contactform.StatusError, c.Status())
	assert.Equal(t, "Ada", c.Form().Name)
	mockClient.AssertExpectations(t)
}

func TestController_Submit_IncompleteForm(t *testing.T) {
	tests := []struct {
		name string
		form contactform.Form
	}{
		{name: "all empty", form: contactform.Form{}},
		{name: "blank name", form: contactform.Form{Name: "   ", Email: "ada@example.com", Message: "Hello"}},
		{name: "missing email", form: contactform.Form{Name: "Ada", Message: "Hello"}},
		{name: "whitespace message", form: contactform.Form{Name: "Ada", Email: "ada@example.com", Message: "\n\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockHTTPClient)
			c := contactform.New("http://relay.test/api/contact", mockClient)
			fillForm(t, c, tt.form.Name, tt.form.Email, tt.form.Message)

			err := c.Submit(context.Background())

			assert.ErrorIs(t, err, contactform.ErrIncompleteForm)
			assert.Equal(t, contactform.StatusIdle, c.Status(), "status is untouched")
			mockClient.AssertNotCalled(t, "Do", mock.Anything)
		})
	}
}

func TestController_Submit_RejectsWhileSending(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second), contactform.WithAfterFunc(clock.AfterFunc))
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background())
	}()

	<-arrived
	assert.Equal(t, contactform.StatusSending, c.Status())
	assert.Equal(t, "⏳ Sending your message...", c.StatusText())
	assert.Equal(t, "Sending...", c.SubmitLabel())
	assert.ErrorIs(t, c.Submit(context.Background()), contactform.ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, contactform.StatusSuccess, c.Status())
	assert.Equal(t, "Send Message", c.SubmitLabel())
}

func TestController_StaleRevertIgnored(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second),
		contactform.WithAfterFunc(clock.AfterFunc),
		contactform.WithRevertDelay(time.Second),
	)

	fillForm(t, c, "Ada", "ada@example.com", "Hello")
	require.NoError(t, c.Submit(context.Background()))
	require.Len(t, clock.timers, 1)
	assert.Equal(t, time.Second, clock.timers[0].delay)

	// a second submission inside the revert window fails
	fillForm(t, c, "Ada", "ada@example.com", "Hello again")
	require.Error(t, c.Submit(context.Background()))
	assert.True(t, clock.timers[0].stopped)

	// the first submission's revert must not wipe the newer error status
	clock.fire(0)
	assert.Equal(t, contactform.StatusError, c.Status())
}

func TestController_StaleRevertAfterNewSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second), contactform.WithAfterFunc(clock.AfterFunc))

	fillForm(t, c, "Ada", "ada@example.com", "One")
	require.NoError(t, c.Submit(context.Background()))
	fillForm(t, c, "Ada", "ada@example.com", "Two")
	require.NoError(t, c.Submit(context.Background()))
	require.Len(t, clock.timers, 2)

	clock.fire(0)
	assert.Equal(t, contactform.StatusSuccess, c.Status(), "old timer does not cut the new success short")

	clock.fire(1)
	assert.Equal(t, contactform.StatusIdle, c.Status())
}

func TestController_Close(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second), contactform.WithAfterFunc(clock.AfterFunc))
	fillForm(t, c, "Ada", "ada@example.com", "Hello")
	require.NoError(t, c.Submit(context.Background()))

	c.Close()

	assert.True(t, clock.timers[0].stopped)
}

func TestController_Submit_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := contactform.New(srv.URL, httpclient.NewClientWithTimeout(5*time.Second))
	fillForm(t, c, "Ada", "ada@example.com", "Hello")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Submit(ctx)

	var submitErr *contactform.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, contactform.StatusError, c.Status())
}
