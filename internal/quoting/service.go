// Package quoting implements the backend side of the shipping quote: stock
// validation against the catalog, fan-out to courier tarifiers, and
// selection of the cheapest offer.
package quoting

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/catalog"
	"github.com/flappshop/shop-service/internal/shipping"
)

// RefusedError is any reason the quote cannot be served for this cart:
// catalog unreachable, unknown product, insufficient stock, or no courier
// offering. The transport layer maps every refusal to the same client error,
// undifferentiated on purpose.
type RefusedError struct {
	Reason string
}

func (e *RefusedError) Error() string { return e.Reason }

// CartLine is the enriched line item sent to the tarifiers.
type CartLine struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Discount  int     `json:"discount"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	Rating    float64 `json:"rating"`
	StockReal int     `json:"stock_real"`
}

// Origin is the warehouse the shipment leaves from.
type Origin struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Commune string `json:"commune"`
}

// DefaultOrigin is the store warehouse.
var DefaultOrigin = Origin{
	Name:    "Tienda Flapp",
	Phone:   "56912345678",
	Address: "Juan de Valiente 3630",
	Commune: "Vitacura",
}

// ProductSource supplies the full catalog for stock validation.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

type Service struct {
	products ProductSource
	couriers []*Courier
	origin   Origin
	logger   *log.Logger
}

func NewService(products ProductSource, couriers []*Courier, logger *log.Logger) *Service {
	return &Service{
		products: products,
		couriers: couriers,
		origin:   DefaultOrigin,
		logger:   logger,
	}
}

// QuoteCart validates the cart against live catalog stock, asks every
// configured courier for a price, and returns the cheapest offer.
//
// A courier failing only drops it from the candidate set; the quote as a
// whole is refused when validation fails or no courier offers.
func (s *Service) QuoteCart(ctx context.Context, c *cart.Cart) (*shipping.Quote, error) {
	pool, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, &RefusedError{Reason: "failed to fetch catalog products"}
	}

	byID := make(map[int]catalog.Product, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	lines := make([]CartLine, 0, len(c.Products))
	for _, it := range c.Products {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, &RefusedError{Reason: fmt.Sprintf("product with id %d not found", it.ProductID)}
		}

		stockReal := effectiveStock(p.Stock, p.Rating)
		if it.Quantity > stockReal {
			return nil, &RefusedError{Reason: fmt.Sprintf("insufficient stock for product %s", p.Title)}
		}

		lines = append(lines, CartLine{
			ID:        it.ProductID,
			Name:      p.Title,
			UnitPrice: it.Price,
			Discount:  it.Discount,
			Quantity:  it.Quantity,
			Stock:     p.Stock,
			Rating:    p.Rating,
			StockReal: stockReal,
		})
	}

	payload := tarifierRequest{
		CustomerData: c.CustomerData,
		Cart:         lines,
		Origin:       s.origin,
	}

	var best *shipping.Quote
	for _, courier := range s.couriers {
		price, err := courier.Price(ctx, payload)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("courier %s skipped: %v", courier.Name(), err)
			}
			continue
		}
		if best == nil || price < best.Price {
			best = &shipping.Quote{Courier: courier.Name(), Price: price}
		}
	}

	if best == nil {
		return nil, &RefusedError{Reason: "no shipping available"}
	}
	return best, nil
}

// effectiveStock is the sellable stock: listed stock divided by rating,
// rounded down. A rating below 1 counts as 1 so the result never inflates.
func effectiveStock(stock int, rating float64) int {
	if rating < 1 {
		rating = 1
	}
	return int(math.Floor(float64(stock) / rating))
}
