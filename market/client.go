package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches quotes over HTTP from a quote API that serves
// GET {base}/v1/quotes?symbol={instrument} with a bearer token and responds
//
//	{"symbol": "AAPL", "price": "187.41"}
//
// Prices arrive as strings and are parsed as decimals, never floats.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a quote client for the given API base URL. The token may
// be empty for feeds that do not require authentication.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type quoteResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// CurrentPrice returns the latest quoted price for the instrument. A 404
// from the feed maps to ErrUnavailable.
func (c *Client) CurrentPrice(ctx context.Context, instrument string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/v1/quotes?%s", c.baseURL, url.Values{"symbol": {instrument}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnavailable, instrument)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("quote API returned %d: %s", resp.StatusCode, string(body))
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return decimal.Zero, fmt.Errorf("decode quote: %w", err)
	}

	price, err := decimal.NewFromString(qr.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", qr.Price, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s quoted at %s", ErrUnavailable, instrument, qr.Price)
	}
	return price, nil
}
