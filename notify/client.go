package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"calidad-be/config"
)

type Client struct {
	webhookURL string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.NotifierConfig) *Client {
	return &Client{
		webhookURL: cfg.WebhookURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type Notification struct {
	Event         string `json:"event"`
	CompanyID     string `json:"company_id"`
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	DocumentCode  string `json:"document_code"`
	Message       string `json:"message"`
	OccurredAt    string `json:"occurred_at"`
}

func (c *Client) Send(notification Notification) error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook url is not configured")
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}
