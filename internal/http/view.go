package httpapi

import (
	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/checkout"
	"github.com/flappshop/shop-service/internal/pricing"
	"github.com/flappshop/shop-service/internal/shipping"
)

// lineView is a cart line plus its derived amounts, ready to render.
type lineView struct {
	cart.Item
	DiscountedPrice float64 `json:"discountedPrice"`
	Subtotal        float64 `json:"subtotal"`
}

type cartView struct {
	Products        []lineView        `json:"products"`
	CustomerData    cart.CustomerData `json:"customer_data"`
	Subtotal        float64           `json:"subtotal"`
	SubtotalDisplay string            `json:"subtotalDisplay"`
}

func newCartView(c *cart.Cart) cartView {
	if c == nil {
		c = &cart.Cart{}
	}
	lines := make([]lineView, 0, len(c.Products))
	for _, it := range c.Products {
		lines = append(lines, lineView{
			Item:            it,
			DiscountedPrice: pricing.DiscountedPrice(it),
			Subtotal:        pricing.LineSubtotal(it),
		})
	}
	subtotal := pricing.OrderSubtotal(c)
	return cartView{
		Products:        lines,
		CustomerData:    c.CustomerData,
		Subtotal:        subtotal,
		SubtotalDisplay: pricing.FormatAmount(subtotal),
	}
}

type checkoutView struct {
	State           checkout.State  `json:"state"`
	Cart            cartView        `json:"cart"`
	Quote           *shipping.Quote `json:"quote,omitempty"`
	Subtotal        float64         `json:"subtotal"`
	Total           float64         `json:"total"`
	TotalDisplay    string          `json:"totalDisplay"`
	CanRequestQuote bool            `json:"canRequestQuote"`
	CanPlaceOrder   bool            `json:"canPlaceOrder"`
	Notice          string          `json:"notice,omitempty"`
}

func newCheckoutView(o *checkout.Orchestrator, notice string) checkoutView {
	state := o.State()
	total := o.Total()
	return checkoutView{
		State:           state,
		Cart:            newCartView(o.Cart()),
		Quote:           o.SelectedQuote(),
		Subtotal:        o.Subtotal(),
		Total:           total,
		TotalDisplay:    pricing.FormatAmount(total),
		CanRequestQuote: state.CanRequestQuote(),
		CanPlaceOrder:   state.CanPlaceOrder(),
		Notice:          notice,
	}
}
