package catalog

import (
	"errors"
	"math/rand"

	"github.com/flappshop/shop-service/internal/cart"
)

// Default draw bounds for a generated cart.
const (
	MinSample = 2
	MaxSample = 5
)

// ErrInsufficientCatalog means the product pool is too small to satisfy the
// minimum draw. Checked up front so the distinct-product draw can never loop
// without making progress.
var ErrInsufficientCatalog = errors.New("catalog smaller than minimum sample size")

// Sample draws a random order from the product pool: between min and max
// distinct products, each with quantity 1-3 and a discount of 0-9 percent.
// It has no side effects; the caller decides what to do with the lines.
func Sample(rng *rand.Rand, pool []Product, min, max int) ([]cart.Item, error) {
	if len(pool) < min {
		return nil, ErrInsufficientCatalog
	}

	// A pool between min and max products caps the draw instead of failing.
	upper := max
	if upper > len(pool) {
		upper = len(pool)
	}
	n := min + rng.Intn(upper-min+1)

	// Rejection sampling on the index keeps products distinct.
	used := make(map[int]bool, n)
	items := make([]cart.Item, 0, n)
	for len(items) < n {
		idx := rng.Intn(len(pool))
		if used[idx] {
			continue
		}
		used[idx] = true

		p := pool[idx]
		items = append(items, cart.Item{
			ProductID: p.ID,
			Quantity:  1 + rng.Intn(3),
			Price:     p.Price,
			Discount:  rng.Intn(10),
			Title:     p.Title,
			Thumbnail: p.Thumbnail,
		})
	}

	return items, nil
}
