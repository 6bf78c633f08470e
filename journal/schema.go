package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity TEXT NOT NULL,
	price TEXT NOT NULL,
	executed_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS portfolios (
	owner TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS portfolio_trades (
	owner TEXT NOT NULL,
	seq INTEGER NOT NULL,
	trade_id TEXT NOT NULL,
	PRIMARY KEY (owner, seq)
);

CREATE TABLE IF NOT EXISTS holdings (
	owner TEXT NOT NULL,
	instrument TEXT NOT NULL,
	quantity TEXT NOT NULL,
	avg_cost TEXT NOT NULL,
	PRIMARY KEY (owner, instrument)
);

CREATE INDEX IF NOT EXISTS idx_portfolio_trades_trade ON portfolio_trades(trade_id);
`
