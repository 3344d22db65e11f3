package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := map[string]struct {
		state State
		event Event
		want  State
		ok    bool
	}{
		"enter with cart":          {StateAwaitingCart, EventCartLoaded, StateEditingCustomerData, true},
		"request quote from form":  {StateEditingCustomerData, EventQuoteRequested, StateQuotePending, true},
		"re-quote after offer":     {StateQuoteReadyOffer, EventQuoteRequested, StateQuotePending, true},
		"re-quote after no offer":  {StateQuoteReadyNoOffer, EventQuoteRequested, StateQuotePending, true},
		"quote arrives":            {StateQuotePending, EventQuoteReceived, StateQuoteReadyOffer, true},
		"quote refused":            {StateQuotePending, EventQuoteRefused, StateQuoteReadyNoOffer, true},
		"quote errors out":         {StateQuotePending, EventQuoteErrored, StateEditingCustomerData, true},
		"finalize with offer":      {StateQuoteReadyOffer, EventOrderFinalized, StateOrderPlaced, true},
		"finalize without offer":   {StateQuoteReadyNoOffer, EventOrderFinalized, StateQuoteReadyNoOffer, false},
		"finalize while editing":   {StateEditingCustomerData, EventOrderFinalized, StateEditingCustomerData, false},
		"double quote request":     {StateQuotePending, EventQuoteRequested, StateQuotePending, false},
		"enter twice":              {StateEditingCustomerData, EventCartLoaded, StateEditingCustomerData, false},
		"order placed is terminal": {StateOrderPlaced, EventQuoteRequested, StateOrderPlaced, false},
		"receive while not asked":  {StateEditingCustomerData, EventQuoteReceived, StateEditingCustomerData, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Transition(tc.state, tc.event)
			if tc.ok {
				require.NoError(t, err)
			} else {
				var invalid *InvalidTransitionError
				require.ErrorAs(t, err, &invalid)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStateProjections(t *testing.T) {
	assert.True(t, StateQuoteReadyOffer.CanPlaceOrder())
	assert.False(t, StateQuoteReadyNoOffer.CanPlaceOrder())
	assert.False(t, StateQuotePending.CanPlaceOrder())
	assert.False(t, StateEditingCustomerData.CanPlaceOrder())

	assert.True(t, StateEditingCustomerData.CanRequestQuote())
	assert.True(t, StateQuoteReadyOffer.CanRequestQuote())
	assert.True(t, StateQuoteReadyNoOffer.CanRequestQuote())
	assert.False(t, StateQuotePending.CanRequestQuote())
	assert.False(t, StateAwaitingCart.CanRequestQuote())
	assert.False(t, StateOrderPlaced.CanRequestQuote())
}
