// Package checkout sequences the checkout screen: customer-data capture,
// quote retrieval, quote application, and order finalization.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/events"
	"github.com/flappshop/shop-service/internal/pricing"
	"github.com/flappshop/shop-service/internal/shipping"
)

// ErrNoActiveCart means checkout was entered with nothing saved. Fatal for
// this screen; the only recovery is going back to cart building.
var ErrNoActiveCart = errors.New("no active cart")

// ErrQuoteInFlight rejects a second quote request while one is pending.
var ErrQuoteInFlight = errors.New("quote request already in flight")

// ErrAbandoned means the screen instance was left before the in-flight
// operation resolved; its result has been discarded.
var ErrAbandoned = errors.New("checkout instance abandoned")

// QuoteRequester is the shipping quote client seam.
type QuoteRequester interface {
	RequestQuote(ctx context.Context, c *cart.Cart) (*shipping.Quote, error)
}

// Orchestrator drives one checkout screen instance over the cart store, the
// quote client, and the pricing rules.
//
// All methods are safe for concurrent use, but the design intent is the
// original single-shopper flow: the mutex stands in for "controls disabled
// while an operation runs".
type Orchestrator struct {
	store  cart.Store
	quotes QuoteRequester
	pub    events.Publisher
	logger *log.Logger

	mu         sync.Mutex
	state      State
	cart       *cart.Cart
	selected   *shipping.Quote
	generation uint64
}

func New(store cart.Store, quotes QuoteRequester, pub events.Publisher, logger *log.Logger) *Orchestrator {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Orchestrator{
		store:  store,
		quotes: quotes,
		pub:    pub,
		logger: logger,
		state:  StateAwaitingCart,
	}
}

// Enter loads the saved cart and moves to the editing state. A missing cart
// is ErrNoActiveCart and leaves the instance in its entry state.
func (o *Orchestrator) Enter(ctx context.Context) (*cart.Cart, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := Transition(o.state, EventCartLoaded); err != nil {
		return nil, err
	}

	c, err := o.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("enter checkout: %w", err)
	}
	if c == nil {
		return nil, ErrNoActiveCart
	}

	o.state = StateEditingCustomerData
	o.cart = c
	return c.Clone(), nil
}

// RequestQuote commits the submitted customer data into the cart, persists
// it, and asks the backend for a shipping quote. Exactly one request may be
// in flight; outcomes map onto the state machine:
//
//   - quote returned: it becomes the selected shipping option;
//   - ErrNoOffer: no selection, place-order stays disabled, retry allowed;
//   - any other error: state reverts to editing so the user can retry.
func (o *Orchestrator) RequestQuote(ctx context.Context, data cart.CustomerData) (*shipping.Quote, error) {
	o.mu.Lock()
	next, err := Transition(o.state, EventQuoteRequested)
	if err != nil {
		if o.state == StateQuotePending {
			err = ErrQuoteInFlight
		}
		o.mu.Unlock()
		return nil, err
	}

	// The shipping street mirrors the address field.
	data.ShippingStreet = data.Address
	o.state = next
	o.selected = nil
	o.cart.CustomerData = data
	snapshot := o.cart.Clone()
	gen := o.generation
	o.mu.Unlock()

	if err := o.store.Save(ctx, snapshot); err != nil {
		o.resolveQuote(gen, StateEditingCustomerData, nil)
		return nil, fmt.Errorf("persist customer data: %w", err)
	}

	q, qerr := o.quotes.RequestQuote(ctx, snapshot)

	switch {
	case errors.Is(qerr, shipping.ErrNoOffer):
		if !o.resolveQuote(gen, StateQuoteReadyNoOffer, nil) {
			return nil, ErrAbandoned
		}
		return nil, shipping.ErrNoOffer
	case qerr != nil:
		if !o.resolveQuote(gen, StateEditingCustomerData, nil) {
			return nil, ErrAbandoned
		}
		return nil, qerr
	default:
		if !o.resolveQuote(gen, StateQuoteReadyOffer, q) {
			return nil, ErrAbandoned
		}
		return q, nil
	}
}

// resolveQuote applies the outcome of an in-flight request, unless the
// instance has been abandoned in the meantime (the generation moved on).
func (o *Orchestrator) resolveQuote(gen uint64, next State, q *shipping.Quote) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		if o.logger != nil {
			o.logger.Printf("discarding quote result for abandoned instance")
		}
		return false
	}
	o.state = next
	o.selected = q
	return true
}

// PlaceOrder finalizes: clears the persisted cart, emits the OrderPlaced
// event, and moves to the terminal state. Legal only with a selected quote.
func (o *Orchestrator) PlaceOrder(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := Transition(o.state, EventOrderFinalized)
	if err != nil {
		return "", err
	}

	if err := o.store.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear cart: %w", err)
	}

	orderID := uuid.NewString()
	ev := events.OrderPlaced{
		EventType:     "OrderPlaced",
		OrderID:       orderID,
		Courier:       o.selected.Courier,
		ShippingPrice: o.selected.Price,
		Total:         pricing.OrderTotal(pricing.OrderSubtotal(o.cart), o.selected.Price),
		Timestamp:     time.Now().UTC(),
	}
	for _, it := range o.cart.Products {
		ev.Items = append(ev.Items, events.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
		})
	}
	// Best-effort: the order is placed whether or not the event lands.
	if err := o.pub.PublishOrderPlaced(ctx, ev); err != nil && o.logger != nil {
		o.logger.Printf("publish OrderPlaced: %v", err)
	}

	o.state = next
	o.generation++
	return orderID, nil
}

// Abandon marks the instance as left. Any in-flight result is discarded on
// arrival; the store needs no cleanup beyond what it already guarantees.
func (o *Orchestrator) Abandon() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
}

// State reports the current screen state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Cart returns a copy of the in-memory cart, or nil before Enter.
func (o *Orchestrator) Cart() *cart.Cart {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cart.Clone()
}

// SelectedQuote returns the currently selected shipping option, if any.
func (o *Orchestrator) SelectedQuote() *shipping.Quote {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return nil
	}
	q := *o.selected
	return &q
}

// Subtotal is the order subtotal of the in-memory cart.
func (o *Orchestrator) Subtotal() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cart == nil {
		return 0
	}
	return pricing.OrderSubtotal(o.cart)
}

// Total is the subtotal plus the selected shipping price; with no quote
// selected, shipping contributes zero.
func (o *Orchestrator) Total() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cart == nil {
		return 0
	}
	var shippingPrice float64
	if o.selected != nil {
		shippingPrice = o.selected.Price
	}
	return pricing.OrderTotal(pricing.OrderSubtotal(o.cart), shippingPrice)
}
