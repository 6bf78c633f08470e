package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

func (s Side) Valid() bool { return s == Buy || s == Sell }

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, s)
	}
}

// Trade is one recorded execution. Quantity is always positive; Side carries
// the sign semantics.
type Trade struct {
	ID         string
	Instrument string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Side       Side
	ExecutedAt time.Time
}

// Validate checks the recording preconditions: positive quantity and price,
// non-empty instrument, a known side.
func (t Trade) Validate() error {
	if strings.TrimSpace(t.Instrument) == "" {
		return fmt.Errorf("%w: instrument is required", ErrInvalidTrade)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidTrade, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidTrade, t.Price)
	}
	if !t.Side.Valid() {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, t.Side)
	}
	return nil
}
