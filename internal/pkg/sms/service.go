// internal/pkg/sms/service.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
)

// Message is one outbound SMS
type Message struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// Provider delivers SMS messages
type Provider interface {
	Send(ctx context.Context, message Message) error
}

// NewProvider creates the configured provider. Unknown or empty provider
// names fall back to the logging provider so development environments work
// without a gateway account.
func NewProvider(cfg *config.Config, logger *logrus.Logger) Provider {
	switch cfg.External.SMS.Provider {
	case "api":
		return NewAPIProvider(cfg)
	default:
		return NewLogProvider(logger)
	}
}

// APIProvider sends messages through an HTTP SMS gateway
type APIProvider struct {
	apiKey     string
	sender     string
	baseURL    string
	httpClient *http.Client
}

// NewAPIProvider creates an HTTP gateway provider
func NewAPIProvider(cfg *config.Config) *APIProvider {
	return &APIProvider{
		apiKey:  cfg.External.SMS.APIKey,
		sender:  cfg.External.SMS.Sender,
		baseURL: cfg.External.SMS.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts the message to the gateway
func (p *APIProvider) Send(ctx context.Context, message Message) error {
	payload, err := json.Marshal(map[string]string{
		"from": p.sender,
		"to":   message.To,
		"text": message.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SMS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// LogProvider writes messages to the log instead of sending them
type LogProvider struct {
	logger *logrus.Logger
}

// NewLogProvider creates a logging provider for development
func NewLogProvider(logger *logrus.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

// Send logs the message
func (p *LogProvider) Send(ctx context.Context, message Message) error {
	p.logger.WithFields(logrus.Fields{
		"to":   message.To,
		"text": message.Text,
	}).Info("SMS (log provider)")
	return nil
}
