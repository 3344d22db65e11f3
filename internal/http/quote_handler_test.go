package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/quoting"
	"github.com/flappshop/shop-service/internal/shipping"
)

type fakeQuoteService struct {
	quoteFunc func(ctx context.Context, c *cart.Cart) (*shipping.Quote, error)
}

func (f *fakeQuoteService) QuoteCart(ctx context.Context, c *cart.Cart) (*shipping.Quote, error) {
	if f.quoteFunc != nil {
		return f.quoteFunc(ctx, c)
	}
	return &shipping.Quote{Courier: "X", Price: 3.5}, nil
}

func postCart(t *testing.T, handler *QuoteHandler, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler.QuoteCart(w, r)
	return w
}

func TestQuoteCartHandlerSuccess(t *testing.T) {
	handler := NewQuoteHandler(&fakeQuoteService{}, nil)

	w := postCart(t, handler, &cart.Cart{Products: []cart.Item{{ProductID: 1, Quantity: 1}}})

	require.Equal(t, http.StatusOK, w.Code)
	var q shipping.Quote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&q))
	assert.Equal(t, shipping.Quote{Courier: "X", Price: 3.5}, q)
}

func TestQuoteCartHandlerRefused(t *testing.T) {
	svc := &fakeQuoteService{quoteFunc: func(ctx context.Context, c *cart.Cart) (*shipping.Quote, error) {
		return nil, &quoting.RefusedError{Reason: "no shipping available"}
	}}
	handler := NewQuoteHandler(svc, nil)

	w := postCart(t, handler, &cart.Cart{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "no shipping available", resp["error"])
}

func TestQuoteCartHandlerInternalError(t *testing.T) {
	svc := &fakeQuoteService{quoteFunc: func(ctx context.Context, c *cart.Cart) (*shipping.Quote, error) {
		return nil, errors.New("kaboom")
	}}
	handler := NewQuoteHandler(svc, nil)

	w := postCart(t, handler, &cart.Cart{})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQuoteCartHandlerInvalidJSON(t *testing.T) {
	handler := NewQuoteHandler(&fakeQuoteService{}, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	handler.QuoteCart(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "invalid json", resp["error"])
}
