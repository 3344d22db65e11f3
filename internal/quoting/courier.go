package quoting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/flappshop/shop-service/internal/cart"
)

// tarifierRequest is the payload every courier tarifier expects.
type tarifierRequest struct {
	CustomerData cart.CustomerData `json:"customer_data"`
	Cart         []CartLine        `json:"cart"`
	Origin       Origin            `json:"origin"`
}

type tarifierResponse struct {
	Price float64 `json:"price"`
}

// Courier calls one external tarifier. Calls run behind a circuit breaker so
// a flapping courier stops eating the request budget; an open breaker just
// removes the courier from the candidate set for a while.
type Courier struct {
	name       string
	baseURL    string
	credential string
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker[float64]
}

func NewCourier(name, baseURL, credential string, httpClient *http.Client) *Courier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Courier{
		name:       name,
		baseURL:    baseURL,
		credential: credential,
		http:       httpClient,
		breaker: gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
			Name: "tarifier-" + name,
		}),
	}
}

func (c *Courier) Name() string { return c.name }

// Price asks the tarifier for a shipping price for the given payload.
func (c *Courier) Price(ctx context.Context, payload tarifierRequest) (float64, error) {
	return c.breaker.Execute(func() (float64, error) {
		return c.price(ctx, payload)
	})
}

func (c *Courier) price(ctx context.Context, payload tarifierRequest) (float64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode tarifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build tarifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tarifier %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tarifier %s returned status %d", c.name, resp.StatusCode)
	}

	var out tarifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("tarifier %s: decode response: %w", c.name, err)
	}
	return out.Price, nil
}
