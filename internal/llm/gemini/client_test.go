package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/scheduler-assistant/internal/common"
	"github.com/appointly/scheduler-assistant/internal/extract"
)

func testPayload() extract.PromptPayload {
	return extract.PromptPayload{
		Instructions: "extract the appointment",
		CurrentDate:  "2025-10-07",
		Text:         "User's request: 'dentist tomorrow at 10'",
		Image:        &extract.ImageAttachment{Data: "aGVsbG8=", MediaType: "image/png"},
	}
}

func TestCompleteRequestShape(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"status\":\"needs_clarification\",\"message\":\"m\"}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	out, err := c.Complete(context.Background(), testPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"needs_clarification","message":"m"}`, out)

	require.Len(t, captured.Contents, 1)
	parts := captured.Contents[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, "extract the appointment", parts[0].Text)
	assert.Equal(t, "User's request: 'dentist tomorrow at 10'", parts[1].Text)
	require.NotNil(t, parts[2].InlineData)
	assert.Equal(t, "image/png", parts[2].InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", parts[2].InlineData.Data)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
}

func TestCompleteOmitsAbsentParts(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Complete(context.Background(), extract.PromptPayload{Instructions: "i"})
	require.NoError(t, err)
	require.Len(t, captured.Contents, 1)
	assert.Len(t, captured.Contents[0].Parts, 1)
}

func TestCompleteConcatenatesParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"status\":"},{"text":"\"ok\"}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	out, err := c.Complete(context.Background(), extract.PromptPayload{Instructions: "i"})
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok"}`, out)
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Complete(context.Background(), testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendError)
}

func TestCompleteUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: url, Timeout: 2 * time.Second}, nil)
	_, err := c.Complete(context.Background(), testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendUnavailable)
}

func TestCompleteEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Complete(context.Background(), testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendError)
}
