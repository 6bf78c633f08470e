package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"folio/market"
	"folio/pkg/id"
)

// TradeStore is the durable keyed store for trade records. The store is the
// system of record for trade content; Create overwrites an existing record
// with the same ID.
type TradeStore interface {
	Create(ctx context.Context, t Trade) error
	Get(ctx context.Context, tradeID string) (Trade, error)
	Delete(ctx context.Context, tradeID string) error
	ListByIDs(ctx context.Context, ids []string) ([]Trade, error)
}

// PortfolioStore persists portfolios keyed by owner. LoadByOwner reports
// ErrNoPortfolio when the owner has never traded.
type PortfolioStore interface {
	LoadByOwner(ctx context.Context, owner string) (Portfolio, error)
	Save(ctx context.Context, p Portfolio) error
}

// Service is the position ledger: it owns the rules for folding trades into
// holdings and keeps each portfolio's live aggregates consistent with a
// re-derivation from its full trade history, across appends, in-place
// corrections and retractions.
//
// Operations on the same owner are serialized; different owners proceed in
// parallel. Each operation stages its changes on a copy and commits
// all-or-nothing: on any failure the stores and holdings are left as they
// were before the call.
type Service struct {
	trades     TradeStore
	portfolios PortfolioStore
	quotes     market.QuoteFeed

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

func NewService(trades TradeStore, portfolios PortfolioStore, quotes market.QuoteFeed) *Service {
	return &Service{
		trades:     trades,
		portfolios: portfolios,
		quotes:     quotes,
		owners:     map[string]*sync.Mutex{},
	}
}

func (s *Service) ownerLock(owner string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.owners[owner]
	if !ok {
		l = &sync.Mutex{}
		s.owners[owner] = l
	}
	return l
}

// Record folds a new trade into the owner's holdings, persists the trade and
// appends it to the portfolio's trade list. The portfolio is created on the
// owner's first trade. Returns the updated holding; for a sell that closes
// the position the returned holding has zero quantity.
func (s *Service) Record(ctx context.Context, owner string, t Trade) (Holding, error) {
	if err := t.Validate(); err != nil {
		return Holding{}, err
	}
	if t.ID == "" {
		t.ID = id.New()
	}
	if t.ExecutedAt.IsZero() {
		t.ExecutedAt = time.Now().UTC()
	}

	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return Holding{}, err
	}

	next, err := fold(p.Holdings[t.Instrument], t)
	if err != nil {
		return Holding{}, err
	}

	staged := p.Clone()
	setHolding(&staged, next)
	staged.TradeIDs = append(staged.TradeIDs, t.ID)

	if err := s.trades.Create(ctx, t); err != nil {
		return Holding{}, fmt.Errorf("create trade: %w", err)
	}
	if err := s.portfolios.Save(ctx, staged); err != nil {
		_ = s.trades.Delete(ctx, t.ID)
		return Holding{}, fmt.Errorf("save portfolio: %w", err)
	}
	return next, nil
}

// Revise corrects a recorded trade's quantity and price in place, keeping
// its instrument, side and position in the history. The instrument's holding
// is recomputed as if the revised trade had been recorded instead of the
// original, by re-folding that instrument's trade history; patching the live
// aggregate would drift whenever later trades touched the same instrument.
func (s *Service) Revise(ctx context.Context, owner, tradeID string, quantity, price decimal.Decimal) (Holding, error) {
	if !quantity.IsPositive() {
		return Holding{}, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidTrade, quantity)
	}
	if !price.IsPositive() {
		return Holding{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidTrade, price)
	}

	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.portfolios.LoadByOwner(ctx, owner)
	if err != nil {
		if isNoPortfolio(err) {
			return Holding{}, fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
		}
		return Holding{}, fmt.Errorf("load portfolio: %w", err)
	}
	history, i, err := s.history(ctx, p, tradeID)
	if err != nil {
		return Holding{}, err
	}

	original := history[i]
	revised := original
	revised.Quantity = quantity
	revised.Price = price
	history[i] = revised

	next, err := refold(history, original.Instrument)
	if err != nil {
		return Holding{}, err
	}

	staged := p.Clone()
	setHolding(&staged, next)

	if err := s.trades.Create(ctx, revised); err != nil {
		return Holding{}, fmt.Errorf("update trade: %w", err)
	}
	if err := s.portfolios.Save(ctx, staged); err != nil {
		_ = s.trades.Create(ctx, original)
		return Holding{}, fmt.Errorf("save portfolio: %w", err)
	}
	return next, nil
}

// Retract removes a recorded trade and reverses its effect, re-folding the
// instrument's remaining trade history. The trade is deleted from the store
// and dropped from the portfolio's trade list. Returns the resulting
// holding; zero quantity means the position is gone.
func (s *Service) Retract(ctx context.Context, owner, tradeID string) (Holding, error) {
	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.portfolios.LoadByOwner(ctx, owner)
	if err != nil {
		if isNoPortfolio(err) {
			return Holding{}, fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
		}
		return Holding{}, fmt.Errorf("load portfolio: %w", err)
	}
	history, i, err := s.history(ctx, p, tradeID)
	if err != nil {
		return Holding{}, err
	}

	removed := history[i]
	remaining := append(append([]Trade{}, history[:i]...), history[i+1:]...)

	next, err := refold(remaining, removed.Instrument)
	if err != nil {
		return Holding{}, err
	}

	staged := p.Clone()
	setHolding(&staged, next)
	staged.TradeIDs = append(staged.TradeIDs[:i:i], staged.TradeIDs[i+1:]...)

	if err := s.trades.Delete(ctx, tradeID); err != nil {
		return Holding{}, fmt.Errorf("delete trade: %w", err)
	}
	if err := s.portfolios.Save(ctx, staged); err != nil {
		_ = s.trades.Create(ctx, removed)
		return Holding{}, fmt.Errorf("save portfolio: %w", err)
	}
	return next, nil
}

// Holdings returns the owner's current holdings sorted by instrument.
func (s *Service) Holdings(ctx context.Context, owner string) ([]Holding, error) {
	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.portfolios.LoadByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]Holding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instrument < out[j].Instrument })
	return out, nil
}

// History returns the owner's trades in the order they were applied.
func (s *Service) History(ctx context.Context, owner string) ([]Trade, error) {
	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.portfolios.LoadByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	trades, err := s.trades.ListByIDs(ctx, p.TradeIDs)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

func (s *Service) loadOrCreate(ctx context.Context, owner string) (Portfolio, error) {
	p, err := s.portfolios.LoadByOwner(ctx, owner)
	switch {
	case err == nil:
		return p, nil
	case isNoPortfolio(err):
		return NewPortfolio(owner), nil
	default:
		return Portfolio{}, fmt.Errorf("load portfolio: %w", err)
	}
}

// history loads the portfolio's trades in applied order and locates tradeID
// within them.
func (s *Service) history(ctx context.Context, p Portfolio, tradeID string) ([]Trade, int, error) {
	at := -1
	for i, tid := range p.TradeIDs {
		if tid == tradeID {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
	}
	trades, err := s.trades.ListByIDs(ctx, p.TradeIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("list trades: %w", err)
	}
	if len(trades) != len(p.TradeIDs) {
		return nil, 0, fmt.Errorf("portfolio %s references %d trades, store has %d",
			p.Owner, len(p.TradeIDs), len(trades))
	}
	return trades, at, nil
}
