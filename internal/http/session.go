package httpapi

import (
	"math/rand"
	"sync"
	"time"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/catalog"
	"github.com/flappshop/shop-service/internal/checkout"
)

// Session holds the single shopper's screen state: the random source for
// cart generation and the live checkout instance, if any. The mutex is the
// service-side version of the UI disabling its controls while work runs.
type Session struct {
	newCheckout func() *checkout.Orchestrator

	mu   sync.Mutex
	rng  *rand.Rand
	curr *checkout.Orchestrator
}

func NewSession(newCheckout func() *checkout.Orchestrator) *Session {
	return &Session{
		newCheckout: newCheckout,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample draws a random order from the pool using the session's rng.
func (s *Session) Sample(pool []catalog.Product) ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Sample(s.rng, pool, catalog.MinSample, catalog.MaxSample)
}

// Checkout returns the live checkout instance, creating one when asked.
func (s *Session) Checkout(create bool) *checkout.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curr == nil && create {
		s.curr = s.newCheckout()
	}
	return s.curr
}

// ResetCheckout abandons the live checkout instance, if any. A quote still
// in flight for it resolves into the void.
func (s *Session) ResetCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curr != nil {
		s.curr.Abandon()
		s.curr = nil
	}
}
