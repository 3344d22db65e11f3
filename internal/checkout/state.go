package checkout

import "fmt"

// State is the explicit checkout screen state. UI concerns like which
// buttons are enabled are projections of this value, never the other way
// around.
type State string

const (
	// StateAwaitingCart is the entry state, before the saved cart is loaded.
	StateAwaitingCart State = "awaiting_cart"
	// StateEditingCustomerData is the form-editing state; a quote may be requested.
	StateEditingCustomerData State = "editing_customer_data"
	// StateQuotePending has exactly one quote request in flight.
	StateQuotePending State = "quote_pending"
	// StateQuoteReadyOffer holds a selected quote; the order can be placed.
	StateQuoteReadyOffer State = "quote_ready_offer"
	// StateQuoteReadyNoOffer means the backend refused; retry stays available,
	// placing the order does not.
	StateQuoteReadyNoOffer State = "quote_ready_no_offer"
	// StateOrderPlaced is terminal.
	StateOrderPlaced State = "order_placed"
)

type Event string

const (
	EventCartLoaded     Event = "cart_loaded"
	EventQuoteRequested Event = "quote_requested"
	EventQuoteReceived  Event = "quote_received"
	EventQuoteRefused   Event = "quote_refused"
	EventQuoteErrored   Event = "quote_errored"
	EventOrderFinalized Event = "order_finalized"
)

// InvalidTransitionError reports an event that is not legal in the current
// state.
type InvalidTransitionError struct {
	State State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("event %s not allowed in state %s", e.Event, e.State)
}

// Transition is the pure state-transition function. It is the single place
// the checkout flow's legality is decided.
func Transition(s State, e Event) (State, error) {
	switch {
	case s == StateAwaitingCart && e == EventCartLoaded:
		return StateEditingCustomerData, nil

	// A quote may be requested from the form, or re-requested after a
	// previous attempt resolved either way.
	case e == EventQuoteRequested &&
		(s == StateEditingCustomerData || s == StateQuoteReadyOffer || s == StateQuoteReadyNoOffer):
		return StateQuotePending, nil

	case s == StateQuotePending && e == EventQuoteReceived:
		return StateQuoteReadyOffer, nil
	case s == StateQuotePending && e == EventQuoteRefused:
		return StateQuoteReadyNoOffer, nil
	case s == StateQuotePending && e == EventQuoteErrored:
		return StateEditingCustomerData, nil

	case s == StateQuoteReadyOffer && e == EventOrderFinalized:
		return StateOrderPlaced, nil
	}

	return s, &InvalidTransitionError{State: s, Event: e}
}

// CanPlaceOrder projects the place-order control's enabled flag.
func (s State) CanPlaceOrder() bool { return s == StateQuoteReadyOffer }

// CanRequestQuote projects the quote control's enabled flag.
func (s State) CanRequestQuote() bool {
	return s == StateEditingCustomerData || s == StateQuoteReadyOffer || s == StateQuoteReadyNoOffer
}
