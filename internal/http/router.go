package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(quote *QuoteHandler, carts *CartHandler, co *CheckoutHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	// Quoting backend wire contract
	r.Post("/api/cart", quote.QuoteCart)

	// Session flow: the two screens
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/cart", carts.Generate)
		r.Get("/cart", carts.GetCart)
		r.Get("/checkout", co.Status)
		r.Post("/checkout/quote", co.RequestQuote)
		r.Post("/checkout/order", co.PlaceOrder)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "shop-service"}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
