// Package i18n resolves display labels from the translation service. The
// storefront ships the product texts themselves inside the catalog; this
// client only fetches UI chrome such as stock status labels, and degrades to
// built-in English labels when the service is unreachable.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/pkg/httpclient"
)

// fallbackLabels are served when the translation service cannot answer.
var fallbackLabels = map[domain.StockStatus]string{
	domain.StockStatusInStock:    "In Stock",
	domain.StockStatusLowStock:   "Low Stock",
	domain.StockStatusOutOfStock: "Out of Stock",
}

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.BreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the translation service.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a translation service client.
func NewClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type labelResponse struct {
	Label string `json:"label"`
}

// StatusLabel returns the localized display label for a stock status. Any
// failure, including an open circuit breaker, falls back to the English
// label: a missing translation must never break the storefront.
func (c *Client) StatusLabel(ctx context.Context, status domain.StockStatus, locale string) string {
	endpoint := fmt.Sprintf("%s/api/v1/labels/stock-status/%s?locale=%s",
		c.baseURL, url.PathEscape(string(status)), url.QueryEscape(locale))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallbackLabels[status]
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "translation service unavailable, using fallback label",
			slog.String("status", string(status)),
			slog.String("locale", locale),
			slog.String("error", err.Error()),
		)
		return fallbackLabels[status]
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := httpclient.ParseResponseError(resp, "translation")
		c.logger.WarnContext(ctx, "translation service error, using fallback label",
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
		return fallbackLabels[status]
	}

	var body labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Label == "" {
		return fallbackLabels[status]
	}

	return body.Label
}
