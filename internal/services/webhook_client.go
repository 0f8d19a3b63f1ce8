package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/retail-admin/backoffice/internal/events"
	"go.uber.org/zap"
)

// WebhookClient forwards role events to an external HTTP endpoint.
type WebhookClient struct {
	url        string
	httpClient *retryablehttp.Client
	log        *zap.Logger
}

func NewWebhookClient(url string, maxRetries int, log *zap.Logger) *WebhookClient {
	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil

	return &WebhookClient{url: url, httpClient: client, log: log}
}

type webhookMessage struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload"`
}

func (c *WebhookClient) Forward(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(webhookMessage{
		Type:    event.Type,
		Text:    describe(event),
		Payload: event.Payload,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func describe(event events.Event) string {
	actor, _ := event.Payload["actor"].(string)
	name, _ := event.Payload["name"].(string)
	switch event.Type {
	case events.EventRoleCreated:
		return fmt.Sprintf("%s created role %q", actor, name)
	case events.EventRoleUpdated:
		return fmt.Sprintf("%s updated role %q", actor, name)
	case events.EventRoleDeleted:
		return fmt.Sprintf("%s deleted role %q", actor, name)
	}
	return fmt.Sprintf("Event: %s", event.Type)
}
