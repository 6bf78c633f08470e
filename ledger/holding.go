package ledger

import "github.com/shopspring/decimal"

// Holding is the aggregate position in one instrument: net quantity held and
// its volume-weighted average acquisition cost. A holding with zero quantity
// is not retained; absence is represented by the instrument missing from the
// portfolio's holdings map.
type Holding struct {
	Instrument  string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
}

// Portfolio is the unit of persistence: one owner's holdings plus the ordered
// list of trade identifiers that produced them. Trade content lives in the
// trade store; the portfolio keeps only linkage and derived aggregates.
type Portfolio struct {
	Owner    string
	Holdings map[string]Holding
	TradeIDs []string
}

func NewPortfolio(owner string) Portfolio {
	return Portfolio{Owner: owner, Holdings: map[string]Holding{}}
}

// Clone returns a deep copy so an operation can be staged without touching
// the loaded portfolio until persistence succeeds.
func (p Portfolio) Clone() Portfolio {
	c := Portfolio{
		Owner:    p.Owner,
		Holdings: make(map[string]Holding, len(p.Holdings)),
		TradeIDs: make([]string, len(p.TradeIDs)),
	}
	for k, v := range p.Holdings {
		c.Holdings[k] = v
	}
	copy(c.TradeIDs, p.TradeIDs)
	return c
}
