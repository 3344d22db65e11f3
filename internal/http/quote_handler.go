package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/quoting"
	"github.com/flappshop/shop-service/internal/shipping"
)

// QuoteService is the quoting backend seam.
type QuoteService interface {
	QuoteCart(ctx context.Context, c *cart.Cart) (*shipping.Quote, error)
}

// QuoteHandler serves POST /api/cart, the shipping-quote wire contract:
// success is the quote body, every refusal is a 400 with an error field.
type QuoteHandler struct {
	svc    QuoteService
	logger *log.Logger
}

func NewQuoteHandler(svc QuoteService, logger *log.Logger) *QuoteHandler {
	return &QuoteHandler{svc: svc, logger: logger}
}

func (h *QuoteHandler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var c cart.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	q, err := h.svc.QuoteCart(r.Context(), &c)
	if err != nil {
		var refused *quoting.RefusedError
		if errors.As(err, &refused) {
			writeError(w, http.StatusBadRequest, refused.Reason)
			return
		}
		if h.logger != nil {
			h.logger.Printf("quote cart: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to quote cart")
		return
	}

	writeJSON(w, http.StatusOK, q)
}
