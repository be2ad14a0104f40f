package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GlebRadaev/payledger/pkg/clients"
)

type WebhookPublisher struct {
	url    string
	client clients.HTTPClientI
}

func NewWebhookPublisher(url string, client clients.HTTPClientI) *WebhookPublisher {
	return &WebhookPublisher{url: url, client: client}
}

func (p *WebhookPublisher) Publish(_ context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("X-Event-Kind", string(event.Kind))

	status, _, err := p.client.Post(p.url, headers, body)
	if err != nil {
		return fmt.Errorf("failed to deliver event %s: %w", event.ID, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook answered %d for event %s", status, event.ID)
	}
	return nil
}
