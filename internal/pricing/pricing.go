// Package pricing derives money amounts from cart state. Everything here is
// a pure function; intermediate sums stay unrounded so per-item rounding
// error cannot compound, and rounding happens only at the display edge.
package pricing

import (
	"fmt"

	"github.com/flappshop/shop-service/internal/cart"
)

// DiscountedPrice is the unit price after applying the percent discount.
func DiscountedPrice(it cart.Item) float64 {
	return it.Price * (1 - float64(it.Discount)/100)
}

// LineSubtotal is the discounted unit price times quantity.
func LineSubtotal(it cart.Item) float64 {
	return DiscountedPrice(it) * float64(it.Quantity)
}

// OrderSubtotal sums LineSubtotal over every product in the cart.
func OrderSubtotal(c *cart.Cart) float64 {
	var total float64
	for _, it := range c.Products {
		total += LineSubtotal(it)
	}
	return total
}

// OrderTotal adds the shipping price to the subtotal. Pass 0 when no quote
// is selected.
func OrderTotal(subtotal, shipping float64) float64 {
	return subtotal + shipping
}

// FormatAmount renders a monetary value for display, two fractional digits.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
