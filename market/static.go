package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Static is a fixed in-memory price table. Used by tests and by the CLI when
// no quote API is configured.
type Static struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

func NewStatic(prices map[string]decimal.Decimal) *Static {
	cp := make(map[string]decimal.Decimal, len(prices))
	for k, v := range prices {
		cp[k] = v
	}
	return &Static{prices: cp}
}

// Set installs or replaces the price for an instrument.
func (s *Static) Set(instrument string, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[instrument] = price
}

func (s *Static) CurrentPrice(_ context.Context, instrument string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[instrument]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnavailable, instrument)
	}
	return p, nil
}
