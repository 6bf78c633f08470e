package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PositionValue is one holding marked to the current quoted price.
type PositionValue struct {
	Instrument  string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	Mark        decimal.Decimal
	MarketValue decimal.Decimal
}

// Valuation is the cumulative-return report for one portfolio.
type Valuation struct {
	Owner       string
	Invested    decimal.Decimal
	MarketValue decimal.Decimal
	Return      decimal.Decimal
	Positions   []PositionValue
}

// CumulativeReturn marks the owner's holdings to market and reports the
// return over everything ever invested:
//
//	invested = sum of price*quantity over all buy trades
//	return   = (market value - invested) / invested
//
// A zero invested base fails with ErrUndefinedReturn. A holding the quote
// feed cannot price makes the whole computation undefined; the error names
// the instrument rather than silently valuing it at zero.
func (s *Service) CumulativeReturn(ctx context.Context, owner string) (Valuation, error) {
	l := s.ownerLock(owner)
	l.Lock()
	defer l.Unlock()

	p, err := s.portfolios.LoadByOwner(ctx, owner)
	if err != nil {
		if isNoPortfolio(err) {
			return Valuation{}, fmt.Errorf("%w: owner %s has no trades", ErrUndefinedReturn, owner)
		}
		return Valuation{}, fmt.Errorf("load portfolio: %w", err)
	}
	trades, err := s.trades.ListByIDs(ctx, p.TradeIDs)
	if err != nil {
		return Valuation{}, fmt.Errorf("list trades: %w", err)
	}

	invested := decimal.Zero
	for _, t := range trades {
		if t.Side == Buy {
			invested = invested.Add(t.Price.Mul(t.Quantity))
		}
	}
	if invested.IsZero() {
		return Valuation{}, fmt.Errorf("%w: owner %s", ErrUndefinedReturn, owner)
	}

	v := Valuation{Owner: owner, Invested: invested}
	for _, h := range p.Holdings {
		mark, err := s.quotes.CurrentPrice(ctx, h.Instrument)
		if err != nil {
			return Valuation{}, fmt.Errorf("price %s: %w", h.Instrument, err)
		}
		mv := h.Quantity.Mul(mark)
		v.Positions = append(v.Positions, PositionValue{
			Instrument:  h.Instrument,
			Quantity:    h.Quantity,
			AverageCost: h.AverageCost,
			Mark:        mark,
			MarketValue: mv,
		})
		v.MarketValue = v.MarketValue.Add(mv)
	}
	sort.Slice(v.Positions, func(i, j int) bool {
		return v.Positions[i].Instrument < v.Positions[j].Instrument
	})

	v.Return = v.MarketValue.Sub(invested).Div(invested)
	return v, nil
}
