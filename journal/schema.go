package journal

// Amounts are TEXT so decimals round-trip exactly. Dates are ISO strings;
// NULL is an undated cashflow.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	reference TEXT,
	trades_file TEXT NOT NULL,
	points_file TEXT NOT NULL,
	strategy TEXT NOT NULL,
	day_count TEXT NOT NULL,
	trades INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	entries INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cashflows (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	date TEXT,
	currency TEXT NOT NULL,
	cashflow TEXT NOT NULL,
	trade_id TEXT NOT NULL,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS aggregates (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	date TEXT,
	currency TEXT NOT NULL,
	cashflow TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pnl (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	currency TEXT NOT NULL,
	pnl TEXT NOT NULL,
	PRIMARY KEY (run_id, currency)
);

CREATE INDEX IF NOT EXISTS idx_cashflows_run_date ON cashflows(run_id, date);
CREATE INDEX IF NOT EXISTS idx_aggregates_run ON aggregates(run_id);
`
