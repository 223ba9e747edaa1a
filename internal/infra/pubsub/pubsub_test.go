package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ridehail/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pub := NewLocalHTTPPublisher(srv.URL, discardLogger())
	event := &service.DomainEvent{
		RequestID:  "req-1",
		Type:       service.EventTripCreated,
		Kind:       "trip",
		RecordID:   "t1",
		UserID:     "u1",
		OccurredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(context.Background(), event))
	require.NoError(t, pub.Close())

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "trip.created", received.Message.Attributes["event_type"])
	assert.Equal(t, "u1", received.Message.Attributes["user_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.DomainEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewLocalHTTPPublisher(srv.URL, discardLogger()).Publish(context.Background(), &service.DomainEvent{Type: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(discardLogger())
	assert.NoError(t, pub.Publish(context.Background(), &service.DomainEvent{Type: "x"}))
	assert.NoError(t, pub.Close())
}
