package quoting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/catalog"
)

type fakeProducts struct {
	listFunc func(ctx context.Context) ([]catalog.Product, error)
}

func (f *fakeProducts) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func poolWith(products ...catalog.Product) *fakeProducts {
	return &fakeProducts{listFunc: func(context.Context) ([]catalog.Product, error) {
		return products, nil
	}}
}

func tarifierServer(t *testing.T, price float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tarifierRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Cart)
		require.Equal(t, DefaultOrigin, req.Origin)

		_ = json.NewEncoder(w).Encode(map[string]float64{"price": price})
	}))
}

func testCart() *cart.Cart {
	return &cart.Cart{
		Products: []cart.Item{{ProductID: 1, Quantity: 2, Price: 10, Discount: 5, Title: "widget"}},
		CustomerData: cart.CustomerData{
			Name: "n", Phone: "p", Address: "a", Commune: "c", ShippingStreet: "a",
		},
	}
}

func TestQuoteCartPicksCheapest(t *testing.T) {
	cheap := tarifierServer(t, 3.5)
	defer cheap.Close()
	expensive := tarifierServer(t, 9.9)
	defer expensive.Close()

	products := poolWith(catalog.Product{ID: 1, Title: "widget", Stock: 10, Rating: 2})
	svc := NewService(products, []*Courier{
		NewCourier("Pricey", expensive.URL, "", nil),
		NewCourier("Cheapo", cheap.URL, "", nil),
	}, nil)

	q, err := svc.QuoteCart(context.Background(), testCart())
	require.NoError(t, err)
	assert.Equal(t, "Cheapo", q.Courier)
	assert.InDelta(t, 3.5, q.Price, 1e-9)
}

func TestQuoteCartSkipsFailingCourier(t *testing.T) {
	up := tarifierServer(t, 7.0)
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	products := poolWith(catalog.Product{ID: 1, Title: "widget", Stock: 10, Rating: 2})
	svc := NewService(products, []*Courier{
		NewCourier("Down", down.URL, "", nil),
		NewCourier("Up", up.URL, "", nil),
	}, nil)

	q, err := svc.QuoteCart(context.Background(), testCart())
	require.NoError(t, err)
	assert.Equal(t, "Up", q.Courier)
}

func TestQuoteCartNoCourierOffers(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	products := poolWith(catalog.Product{ID: 1, Title: "widget", Stock: 10, Rating: 2})
	svc := NewService(products, []*Courier{NewCourier("Down", down.URL, "", nil)}, nil)

	_, err := svc.QuoteCart(context.Background(), testCart())

	var refused *RefusedError
	require.ErrorAs(t, err, &refused)
	assert.Equal(t, "no shipping available", refused.Reason)
}

func TestQuoteCartUnknownProduct(t *testing.T) {
	products := poolWith(catalog.Product{ID: 42, Title: "other", Stock: 10, Rating: 1})
	svc := NewService(products, nil, nil)

	_, err := svc.QuoteCart(context.Background(), testCart())

	var refused *RefusedError
	require.ErrorAs(t, err, &refused)
	assert.Contains(t, refused.Reason, "not found")
}

func TestQuoteCartInsufficientStock(t *testing.T) {
	// stock 10 at rating 4 leaves an effective stock of 2; asking for 3 fails.
	products := poolWith(catalog.Product{ID: 1, Title: "widget", Stock: 10, Rating: 4})
	svc := NewService(products, nil, nil)

	c := testCart()
	c.Products[0].Quantity = 3

	_, err := svc.QuoteCart(context.Background(), c)

	var refused *RefusedError
	require.ErrorAs(t, err, &refused)
	assert.Contains(t, refused.Reason, "insufficient stock")
}

func TestQuoteCartCatalogUnavailable(t *testing.T) {
	products := &fakeProducts{listFunc: func(context.Context) ([]catalog.Product, error) {
		return nil, errors.New("connection refused")
	}}
	svc := NewService(products, nil, nil)

	_, err := svc.QuoteCart(context.Background(), testCart())

	var refused *RefusedError
	require.ErrorAs(t, err, &refused)
	assert.Equal(t, "failed to fetch catalog products", refused.Reason)
}

func TestEffectiveStock(t *testing.T) {
	tests := map[string]struct {
		stock  int
		rating float64
		want   int
	}{
		"rating divides":      {10, 2, 5},
		"rounds down":         {10, 4, 2},
		"rating one":          {7, 1, 7},
		"rating below one":    {7, 0.5, 7},
		"zero rating guarded": {7, 0, 7},
		"zero stock":          {0, 3, 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, effectiveStock(tc.stock, tc.rating))
		})
	}
}

func TestCourierSendsCredential(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]float64{"price": 1})
	}))
	defer srv.Close()

	courier := NewCourier("X", srv.URL, "secret-token", nil)
	_, err := courier.Price(context.Background(), tarifierRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", auth)
}
