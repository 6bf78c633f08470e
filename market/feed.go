// Package market supplies current quoted prices for instruments. Prices are
// consumed for valuation only; they never feed back into position
// accounting.
package market

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnavailable means the feed has no current price for the instrument.
// Callers must treat the dependent computation as undefined, not as zero.
var ErrUnavailable = errors.New("price unavailable")

// QuoteFeed is a read-only source of current market prices.
type QuoteFeed interface {
	CurrentPrice(ctx context.Context, instrument string) (decimal.Decimal, error)
}
