package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kingzyphor/portfolio-api/pkg/email"
	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() email.Message {
	return email.Message{
		From:    "Portfolio <onboarding@resend.dev>",
		To:      []string{"owner@example.com"},
		ReplyTo: "ada@example.com",
		Subject: "New message from Ada",
		Text:    "Email: ada@example.com\n\nMessage: Hello",
	}
}

// fakeResend answers POST /emails with status and body
func fakeResend(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSender(t *testing.T, apiKey, baseURL string) *email.ResendSender {
	t.Helper()
	sender, err := email.NewResendSender(apiKey, baseURL, 5*time.Second)
	require.NoError(t, err)
	return sender
}

func TestResendSender_Send_Success(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	sender := newTestSender(t, "re_test_key", srv.URL+"/")

	id, err := sender.Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", id)
	assert.Equal(t, "Portfolio <onboarding@resend.dev>", captured["from"])
	assert.Equal(t, []any{"owner@example.com"}, captured["to"])
	assert.Equal(t, "ada@example.com", captured["reply_to"])
	assert.Equal(t, "New message from Ada", captured["subject"])
	assert.Equal(t, "Email: ada@example.com\n\nMessage: Hello", captured["text"])
}

func TestResendSender_Send_BaseURLWithoutSlash(t *testing.T) {
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	_, err := newTestSender(t, "key", srv.URL).Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, "/emails", path.Load())
}

func TestNewResendSender_InvalidBaseURL(t *testing.T) {
	_, err := email.NewResendSender("key", "://bad", time.Second)
	assert.Error(t, err)
}

func TestResendSender_Send_ProviderError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			contentType: "application/json",
			body:        `{"statusCode":401,"name":"validation_error","message":"API key is invalid"}`,
			wantMessage: "API key is invalid",
		},
		{
			name:        "unprocessable",
			status:      http.StatusUnprocessableEntity,
			contentType: "application/json",
			body:        `{"statusCode":422,"name":"validation_error","message":"Invalid ` + "`to`" + ` field."}`,
			wantMessage: "Invalid `to` field.",
		},
		{
			name:        "bad gateway without json",
			status:      http.StatusBadGateway,
			body:        "upstream down",
			wantMessage: "502 Bad Gateway",
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			contentType: "application/json",
			body:        `{"message":"Too many requests"}`,
			wantMessage: "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeResend(t, tt.status, tt.contentType, tt.body)

			id, err := newTestSender(t, "key", srv.URL).Send(context.Background(), testMessage())

			require.Error(t, err)
			assert.Empty(t, id)
			assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))

			var pe *email.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, tt.wantMessage, pe.Message)
		})
	}
}

func TestResendSender_Send_RateLimitKeepsSDKError(t *testing.T) {
	srv := fakeResend(t, http.StatusTooManyRequests, "application/json", `{"message":"slow down"}`)

	_, err := newTestSender(t, "key", srv.URL).Send(context.Background(), testMessage())

	assert.ErrorIs(t, err, resend.ErrRateLimit)
}

func TestResendSender_Send_UndecodableSuccess(t *testing.T) {
	srv := fakeResend(t, http.StatusOK, "application/json", "not json")

	id, err := newTestSender(t, "key", srv.URL).Send(context.Background(), testMessage())

	assert.NoError(t, err)
	assert.Empty(t, id)
}

func TestResendSender_Send_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestSender(t, "key", url).Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
	var pe *email.ProviderError
	assert.False(t, errors.As(err, &pe))
}

func TestResendSender_Send_InvalidMessage(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	msg := testMessage()
	msg.To = nil

	_, err := newTestSender(t, "key", srv.URL).Send(context.Background(), msg)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Zero(t, calls.Load())
}

func TestLogSender_Send(t *testing.T) {
	sender := email.NewLogSender()

	id, err := sender.Send(context.Background(), testMessage())
	assert.NoError(t, err)
	assert.Empty(t, id)

	_, err = sender.Send(context.Background(), email.Message{})
	assert.Error(t, err)
}
