// internal/domain/vehicle/client.go
package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
)

// Fitment looks up car brands, models and production years
type Fitment interface {
	SearchBrands(ctx context.Context, query string) ([]string, error)
	Models(ctx context.Context, brand string) ([]string, error)
	Years(ctx context.Context, brand, model string) ([]int, error)
}

// Client is the HTTP client for the external vehicle-fitment service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a fitment client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.External.Fitment.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.External.Fitment.RequestTimeout,
		},
	}
}

// SearchBrands returns car brands matching a free-text query
func (c *Client) SearchBrands(ctx context.Context, query string) ([]string, error) {
	var brands []string
	if err := c.get(ctx, "/brands", url.Values{"q": {query}}, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Models returns the models of a brand
func (c *Client) Models(ctx context.Context, brand string) ([]string, error) {
	var models []string
	if err := c.get(ctx, "/models", url.Values{"brand": {brand}}, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// Years returns the production years of a model
func (c *Client) Years(ctx context.Context, brand, model string) ([]int, error) {
	var years []int
	if err := c.get(ctx, "/years", url.Values{"brand": {brand}, "model": {model}}, &years); err != nil {
		return nil, err
	}
	return years, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build fitment request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fitment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fitment service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode fitment response: %w", err)
	}

	return nil
}
