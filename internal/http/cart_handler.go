package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/catalog"
)

// ProductSource supplies the catalog pool for cart generation.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// defaultCustomerData pre-fills the shipping form for a fresh cart.
var defaultCustomerData = cart.CustomerData{
	Name:           "Usuario de Prueba",
	Phone:          "56912345678",
	Address:        "Av. Providencia 1234",
	Commune:        "Providencia",
	ShippingStreet: "Av. Providencia 1234",
}

// CartHandler drives the cart-building screen: generate a random cart,
// show the saved one.
type CartHandler struct {
	store   cart.Store
	catalog ProductSource
	session *Session
	logger  *log.Logger
}

func NewCartHandler(store cart.Store, catalog ProductSource, session *Session, logger *log.Logger) *CartHandler {
	return &CartHandler{store: store, catalog: catalog, session: session, logger: logger}
}

// Generate samples a fresh random order and replaces the saved cart
// wholesale. The cart is only touched after the whole draw succeeds, so a
// failed generation leaves the previous cart intact.
func (h *CartHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pool, err := h.catalog.ListProducts(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("generate cart: %v", err)
		}
		writeError(w, http.StatusBadGateway, "failed to fetch catalog products")
		return
	}

	items, err := h.session.Sample(pool)
	if err != nil {
		if errors.Is(err, catalog.ErrInsufficientCatalog) {
			writeError(w, http.StatusBadGateway, "catalog has too few products")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate cart")
		return
	}

	// Keep customer data across regenerations; seed defaults the first time.
	c, err := h.store.Load(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		c = &cart.Cart{CustomerData: defaultCustomerData}
	}
	c.Products = items

	if err := h.store.Save(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	// The old checkout instance, if any, now refers to a dead cart.
	h.session.ResetCheckout()

	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "no active cart")
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}
