package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"folio/ledger"
)

// SQLite backs both the trade store and the portfolio store with a single
// database file. Portfolio saves replace the owner's trade list and holdings
// in one transaction.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) Close() error { return j.db.Close() }

// Create writes a trade record, replacing any existing record with the same
// ID (the ledger revises trades in place this way).
func (j *SQLite) Create(ctx context.Context, t ledger.Trade) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades
		(trade_id, instrument, side, quantity, price, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Instrument, string(t.Side),
		t.Quantity.String(), t.Price.String(), t.ExecutedAt.UTC(),
	)
	return err
}

func (j *SQLite) Get(ctx context.Context, tradeID string) (ledger.Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT trade_id, instrument, side, quantity, price, executed_at
		FROM trades WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return ledger.Trade{}, fmt.Errorf("%w: %s", ledger.ErrTradeNotFound, tradeID)
	}
	return t, err
}

func (j *SQLite) Delete(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrTradeNotFound, tradeID)
	}
	return nil
}

// ListByIDs returns the trades for the given IDs in the given order. IDs
// with no record are skipped; the caller decides whether that is an error.
func (j *SQLite) ListByIDs(ctx context.Context, ids []string) ([]ledger.Trade, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT trade_id, instrument, side, quantity, price, executed_at
		FROM trades WHERE trade_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]ledger.Trade, len(ids))
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ledger.Trade, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (j *SQLite) LoadByOwner(ctx context.Context, owner string) (ledger.Portfolio, error) {
	var exists string
	err := j.db.QueryRowContext(ctx,
		`SELECT owner FROM portfolios WHERE owner = ?`, owner).Scan(&exists)
	if err == sql.ErrNoRows {
		return ledger.Portfolio{}, fmt.Errorf("%w: %s", ledger.ErrNoPortfolio, owner)
	}
	if err != nil {
		return ledger.Portfolio{}, err
	}

	p := ledger.NewPortfolio(owner)

	rows, err := j.db.QueryContext(ctx, `
		SELECT trade_id FROM portfolio_trades
		WHERE owner = ? ORDER BY seq ASC`, owner)
	if err != nil {
		return ledger.Portfolio{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return ledger.Portfolio{}, err
		}
		p.TradeIDs = append(p.TradeIDs, id)
	}
	if err := rows.Err(); err != nil {
		return ledger.Portfolio{}, err
	}

	hrows, err := j.db.QueryContext(ctx, `
		SELECT instrument, quantity, avg_cost FROM holdings
		WHERE owner = ?`, owner)
	if err != nil {
		return ledger.Portfolio{}, err
	}
	defer hrows.Close()
	for hrows.Next() {
		var h ledger.Holding
		var qty, cost string
		if err := hrows.Scan(&h.Instrument, &qty, &cost); err != nil {
			return ledger.Portfolio{}, err
		}
		if h.Quantity, err = decimal.NewFromString(qty); err != nil {
			return ledger.Portfolio{}, fmt.Errorf("holding %s quantity: %w", h.Instrument, err)
		}
		if h.AverageCost, err = decimal.NewFromString(cost); err != nil {
			return ledger.Portfolio{}, fmt.Errorf("holding %s avg_cost: %w", h.Instrument, err)
		}
		p.Holdings[h.Instrument] = h
	}
	return p, hrows.Err()
}

// Save replaces the owner's portfolio in one transaction.
func (j *SQLite) Save(ctx context.Context, p ledger.Portfolio) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO portfolios (owner) VALUES (?)`, p.Owner); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM portfolio_trades WHERE owner = ?`, p.Owner); err != nil {
		return err
	}
	for i, id := range p.TradeIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO portfolio_trades (owner, seq, trade_id)
			VALUES (?, ?, ?)`, p.Owner, i, id); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM holdings WHERE owner = ?`, p.Owner); err != nil {
		return err
	}
	for _, h := range p.Holdings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holdings (owner, instrument, quantity, avg_cost)
			VALUES (?, ?, ?, ?)`,
			p.Owner, h.Instrument, h.Quantity.String(), h.AverageCost.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (ledger.Trade, error) {
	var t ledger.Trade
	var side, qty, price string
	var executed time.Time
	if err := row.Scan(&t.ID, &t.Instrument, &side, &qty, &price, &executed); err != nil {
		return ledger.Trade{}, err
	}
	t.Side = ledger.Side(side)
	t.ExecutedAt = executed

	var err error
	if t.Quantity, err = decimal.NewFromString(qty); err != nil {
		return ledger.Trade{}, fmt.Errorf("trade %s quantity: %w", t.ID, err)
	}
	if t.Price, err = decimal.NewFromString(price); err != nil {
		return ledger.Trade{}, fmt.Errorf("trade %s price: %w", t.ID, err)
	}
	return t, nil
}
