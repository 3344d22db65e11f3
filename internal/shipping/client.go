package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/flappshop/shop-service/internal/cart"
)

// ErrNoOffer is the "no shipping available" outcome. It is a legitimate
// result of quoting, not a failure: the caller shows a notice and may retry.
var ErrNoOffer = errors.New("no shipping available")

// Client requests shipping quotes from the quoting backend.
//
// One attempt per call, no automatic retry, and no timeout beyond whatever
// the injected http.Client enforces; bounded latency is explicitly not
// guaranteed here. The caller keeps at most one request in flight.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// RequestQuote posts the full cart (products plus customer/shipping data)
// and interprets the response:
//
//   - 2xx with a quote body returns the quote;
//   - 400 means the backend had no offer, reported as ErrNoOffer;
//   - anything else is an error carrying the backend message when present.
func (c *Client) RequestQuote(ctx context.Context, crt *cart.Cart) (*Quote, error) {
	body, err := json.Marshal(crt)
	if err != nil {
		return nil, fmt.Errorf("encode quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cart", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	// The backend signals every refusal as 400; it is not discriminated
	// further, matching the quoting contract.
	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrNoOffer
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fail struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&fail); err == nil && fail.Error != "" {
			return nil, fmt.Errorf("quote request failed: %s", fail.Error)
		}
		return nil, fmt.Errorf("quote request failed with status %d", resp.StatusCode)
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}
	return &q, nil
}
