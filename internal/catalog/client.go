package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ErrUnavailable covers every way the catalog source can fail: unreachable
// host, non-200 status, malformed body. Callers only need to know the pool
// could not be fetched.
var ErrUnavailable = errors.New("catalog unavailable")

// pageSize matches the upstream listing page size.
const pageSize = 10

// Client fetches products from the upstream listing endpoint.
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

type listResponse struct {
	Products []Product `json:"products"`
}

// ListProducts pages through the catalog until a short page signals the end,
// returning the full pool.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var all []Product

	for skip := 0; ; skip += pageSize {
		page, err := c.fetchPage(ctx, pageSize, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, limit, skip int) ([]Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode listing: %v", ErrUnavailable, err)
	}
	return body.Products, nil
}
