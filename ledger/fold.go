package ledger

import "fmt"

// fold applies one trade to a holding. The zero-quantity holding stands for
// an absent position, both as input and as result.
//
// Buys move the cost basis to the quantity-weighted mean of the old position
// and the new lot. Sells only shrink quantity; disposing of part of a
// position never revises the cost of what remains.
func fold(h Holding, t Trade) (Holding, error) {
	switch t.Side {
	case Buy:
		qty := h.Quantity.Add(t.Quantity)
		cost := h.Quantity.Mul(h.AverageCost).Add(t.Quantity.Mul(t.Price))
		return Holding{
			Instrument:  t.Instrument,
			Quantity:    qty,
			AverageCost: cost.Div(qty),
		}, nil

	case Sell:
		qty := h.Quantity.Sub(t.Quantity)
		if qty.IsNegative() {
			return h, fmt.Errorf("%w: %s holds %s, cannot sell %s",
				ErrInsufficientPosition, t.Instrument, h.Quantity, t.Quantity)
		}
		if qty.IsZero() {
			// Position closed out entirely; the holding is removed.
			return Holding{Instrument: t.Instrument}, nil
		}
		return Holding{
			Instrument:  t.Instrument,
			Quantity:    qty,
			AverageCost: h.AverageCost,
		}, nil

	default:
		return h, fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, t.Side)
	}
}

// refold re-derives one instrument's holding by folding its trades, in
// portfolio order, from a zeroed accumulator. Trades for other instruments
// are skipped. This is the ground truth every live holding must match.
func refold(trades []Trade, instrument string) (Holding, error) {
	h := Holding{Instrument: instrument}
	for _, t := range trades {
		if t.Instrument != instrument {
			continue
		}
		var err error
		h, err = fold(h, t)
		if err != nil {
			return Holding{}, err
		}
	}
	return h, nil
}

// setHolding installs a folded holding into the portfolio, dropping the
// entry when the position has been closed out.
func setHolding(p *Portfolio, h Holding) {
	if h.Quantity.IsZero() {
		delete(p.Holdings, h.Instrument)
		return
	}
	p.Holdings[h.Instrument] = h
}
