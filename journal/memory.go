package journal

import (
	"context"
	"fmt"
	"sync"

	"folio/ledger"
)

// Memory keeps trades and portfolios in process memory. It backs tests and
// the CLI when no database path is configured; contents are lost on exit.
type Memory struct {
	mu         sync.RWMutex
	trades     map[string]ledger.Trade
	portfolios map[string]ledger.Portfolio
}

func NewMemory() *Memory {
	return &Memory{
		trades:     map[string]ledger.Trade{},
		portfolios: map[string]ledger.Portfolio{},
	}
}

func (m *Memory) Create(_ context.Context, t ledger.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades[t.ID] = t
	return nil
}

func (m *Memory) Get(_ context.Context, tradeID string) (ledger.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trades[tradeID]
	if !ok {
		return ledger.Trade{}, fmt.Errorf("%w: %s", ledger.ErrTradeNotFound, tradeID)
	}
	return t, nil
}

func (m *Memory) Delete(_ context.Context, tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trades[tradeID]; !ok {
		return fmt.Errorf("%w: %s", ledger.ErrTradeNotFound, tradeID)
	}
	delete(m.trades, tradeID)
	return nil
}

func (m *Memory) ListByIDs(_ context.Context, ids []string) ([]ledger.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Trade, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.trades[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) LoadByOwner(_ context.Context, owner string) (ledger.Portfolio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.portfolios[owner]
	if !ok {
		return ledger.Portfolio{}, fmt.Errorf("%w: %s", ledger.ErrNoPortfolio, owner)
	}
	return p.Clone(), nil
}

func (m *Memory) Save(_ context.Context, p ledger.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolios[p.Owner] = p.Clone()
	return nil
}
