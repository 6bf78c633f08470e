package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/ledger"
	"folio/market"
)

func TestCumulativeReturn(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, "alice", "AAPL", ledger.Buy, "10", "100")
	f.record(t, "alice", "MSFT", ledger.Buy, "2", "250")
	f.feed.Set("AAPL", d("150"))
	f.feed.Set("MSFT", d("300"))

	v, err := f.svc.CumulativeReturn(ctx, "alice")
	require.NoError(t, err)

	// invested = 1000 + 500; marked = 1500 + 600.
	assert.True(t, v.Invested.Equal(d("1500")))
	assert.True(t, v.MarketValue.Equal(d("2100")))
	assert.True(t, v.Return.Equal(d("0.4")))
	require.Len(t, v.Positions, 2)
	assert.Equal(t, "AAPL", v.Positions[0].Instrument)
	assert.True(t, v.Positions[0].MarketValue.Equal(d("1500")))
}

func TestCumulativeReturnCountsSoldBuysAsInvested(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.record(t, "alice", "AAPL", ledger.Buy, "10", "100")
	f.record(t, "alice", "AAPL", ledger.Sell, "5", "120")
	f.feed.Set("AAPL", d("150"))

	v, err := f.svc.CumulativeReturn(context.Background(), "alice")
	require.NoError(t, err)

	// The full 1000 stays invested; only 5 shares remain marked at 150.
	assert.True(t, v.Invested.Equal(d("1000")))
	assert.True(t, v.MarketValue.Equal(d("750")))
	assert.True(t, v.Return.Equal(d("-0.25")))
}

func TestCumulativeReturnUndefinedWithoutBuys(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// A portfolio that exists but holds no buy trades: record one, then
	// retract it.
	buy := f.record(t, "alice", "AAPL", ledger.Buy, "10", "100")
	_, err := f.svc.Retract(ctx, "alice", buy.ID)
	require.NoError(t, err)

	_, err = f.svc.CumulativeReturn(ctx, "alice")
	assert.ErrorIs(t, err, ledger.ErrUndefinedReturn)

	// So does an owner who never traded at all.
	_, err = f.svc.CumulativeReturn(ctx, "nobody")
	assert.ErrorIs(t, err, ledger.ErrUndefinedReturn)
}

func TestCumulativeReturnReportsUnpriceableInstrument(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.record(t, "alice", "AAPL", ledger.Buy, "10", "100")
	f.record(t, "alice", "MSFT", ledger.Buy, "2", "250")
	f.feed.Set("AAPL", d("150"))
	// MSFT has no quote; the whole valuation is undefined, not zeroed.

	_, err := f.svc.CumulativeReturn(context.Background(), "alice")
	require.ErrorIs(t, err, market.ErrUnavailable)
	assert.Contains(t, err.Error(), "MSFT")
}
