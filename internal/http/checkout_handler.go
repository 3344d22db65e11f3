package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/checkout"
	"github.com/flappshop/shop-service/internal/shipping"
)

// CheckoutHandler drives the checkout screen against the session's
// orchestrator instance.
type CheckoutHandler struct {
	session *Session
	logger  *log.Logger
}

func NewCheckoutHandler(session *Session, logger *log.Logger) *CheckoutHandler {
	return &CheckoutHandler{session: session, logger: logger}
}

// enter returns the live checkout instance, loading the saved cart into a
// fresh one if needed. A missing cart is the screen-fatal condition: the
// client is expected to go back to cart building.
func (h *CheckoutHandler) enter(w http.ResponseWriter, r *http.Request) *checkout.Orchestrator {
	o := h.session.Checkout(true)
	if o.State() == checkout.StateAwaitingCart {
		if _, err := o.Enter(r.Context()); err != nil {
			if errors.Is(err, checkout.ErrNoActiveCart) {
				h.session.ResetCheckout()
				writeError(w, http.StatusConflict, "no active cart")
				return nil
			}
			if h.logger != nil {
				h.logger.Printf("enter checkout: %v", err)
			}
			writeError(w, http.StatusInternalServerError, "failed to load cart")
			return nil
		}
	}
	return o
}

func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	o := h.enter(w, r)
	if o == nil {
		return
	}
	writeJSON(w, http.StatusOK, newCheckoutView(o, ""))
}

// RequestQuote commits the submitted customer data and asks for a shipping
// quote. The no-offer outcome is a 200 with a notice, not an error.
func (h *CheckoutHandler) RequestQuote(w http.ResponseWriter, r *http.Request) {
	var data cart.CustomerData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o := h.enter(w, r)
	if o == nil {
		return
	}

	_, err := o.RequestQuote(r.Context(), data)
	switch {
	case errors.Is(err, shipping.ErrNoOffer):
		writeJSON(w, http.StatusOK, newCheckoutView(o, "no shipping available"))
	case errors.Is(err, checkout.ErrQuoteInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrAbandoned):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		var invalid *checkout.InvalidTransitionError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusConflict, invalid.Error())
			return
		}
		// Recoverable: state is back to editing, retry control re-enabled.
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeJSON(w, http.StatusOK, newCheckoutView(o, ""))
	}
}

// PlaceOrder finalizes the order: the saved cart is removed and the session
// ends at the terminal state.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	o := h.session.Checkout(false)
	if o == nil {
		writeError(w, http.StatusConflict, "no active checkout")
		return
	}

	orderID, err := o.PlaceOrder(r.Context())
	if err != nil {
		var invalid *checkout.InvalidTransitionError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusConflict, invalid.Error())
			return
		}
		if h.logger != nil {
			h.logger.Printf("place order: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"orderId": orderID,
		"status":  "order placed",
	})
}
