package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridehail/config"
	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
	mockUC "ridehail/internal/mocks/usecase"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(t *testing.T) (*PushHandler, *mockUC.MockEventUsecase) {
	t.Helper()

	eventUC := mockUC.NewMockEventUsecase(t)
	h := NewPushHandler(PushHandlerParams{
		Config:  &config.Config{PubSub: &config.PubSubConfig{Provider: config.PubSubProviderLocal}},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		EventUC: eventUC,
	})

	return h, eventUC
}

func pushBody(t *testing.T, event *service.DomainEvent, attrs map[string]string) []byte {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = attrs
	msg.Subscription = "projects/local/subscriptions/ridehail-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func servePush(h *PushHandler, body []byte) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_DeliversEvent(t *testing.T) {
	h, eventUC := newTestPushHandler(t)

	event := &service.DomainEvent{
		Type:       service.EventRatingSubmitted,
		RecordID:   "rating-1",
		Attributes: map[string]string{"driver_id": "d-1"},
	}

	eventUC.EXPECT().
		Handle(mock.Anything, mock.MatchedBy(func(got *service.DomainEvent) bool {
			return got.Type == service.EventRatingSubmitted && got.Attributes["driver_id"] == "d-1"
		})).
		Run(func(ctx context.Context, _ *service.DomainEvent) {
			assert.Equal(t, "req-42", deliverycontext.GetRequestIDFromContext(ctx))
		}).
		Return(nil).
		Once()

	rec := servePush(h, pushBody(t, event, map[string]string{"request_id": "req-42"}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_RequestIDFromEvent(t *testing.T) {
	h, eventUC := newTestPushHandler(t)

	eventUC.EXPECT().
		Handle(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, _ *service.DomainEvent) {
			assert.Equal(t, "from-payload", deliverycontext.GetRequestIDFromContext(ctx))
		}).
		Return(nil).
		Once()

	rec := servePush(h, pushBody(t, &service.DomainEvent{Type: service.EventTripCreated, RequestID: "from-payload"}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_FailureStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "retryable failure asks for redelivery", err: usecase.NewRetryableError(errors.New("store down")), wantCode: http.StatusServiceUnavailable},
		{name: "permanent failure is acknowledged", err: errors.New("nil event"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, eventUC := newTestPushHandler(t)
			eventUC.EXPECT().Handle(mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := servePush(h, pushBody(t, &service.DomainEvent{Type: service.EventRatingSubmitted}, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestPushHandler_MalformedMessage(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "not json", body: []byte("{")},
		{name: "data not base64", body: []byte(`{"message":{"data":"%%%"}}`)},
		{name: "data not an event", body: []byte(`{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("[1,2]")) + `"}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestPushHandler(t)

			rec := servePush(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_VerifiesTokenWhenConfigured(t *testing.T) {
	h, _ := newTestPushHandler(t)
	h.verify = func(*http.Request) error { return errors.New("bad token") }

	rec := servePush(h, pushBody(t, &service.DomainEvent{Type: service.EventTripCreated}, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewPushHandler_TokenCheckOnlyForGoogle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	local := NewPushHandler(PushHandlerParams{
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: config.PubSubProviderLocal, VerifyPushAuth: true}},
		Logger: logger,
	})
	assert.Nil(t, local.verify)

	google := NewPushHandler(PushHandlerParams{
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, VerifyPushAuth: true}},
		Logger: logger,
	})
	assert.NotNil(t, google.verify)
}
