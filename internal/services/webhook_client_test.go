package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/retail-admin/backoffice/internal/events"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhookClientRetries(t *testing.T) {
	var calls atomic.Int32
	var got webhookMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, 2, zap.NewNop())
	err := c.Forward(context.Background(), events.Event{
		Type:    events.EventRoleUpdated,
		Payload: map[string]any{"actor": "admin", "name": "Operator"},
	})
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, events.EventRoleUpdated, got.Type)
	require.Equal(t, `admin updated role "Operator"`, got.Text)
}

func TestWebhookClientGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, 0, zap.NewNop())
	err := c.Forward(context.Background(), events.Event{Type: events.EventRoleDeleted})
	require.Error(t, err)
}
