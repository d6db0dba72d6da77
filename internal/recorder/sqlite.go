package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder journals fetch cycles and valuations to SQLite.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so external readers can query while the session writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_cycles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			action_id   TEXT NOT NULL,
			ticker      TEXT NOT NULL,
			start_date  TEXT,
			end_date    TEXT,
			attempt     INTEGER,
			outcome     TEXT,
			status      INTEGER,
			detail      TEXT,
			rows        INTEGER,
			elapsed_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON fetch_cycles(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ticker ON fetch_cycles(ticker)`,

		`CREATE TABLE IF NOT EXISTS valuations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			holdings    INTEGER,
			priced      INTEGER,
			total_value TEXT,
			currency    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuations_ts ON valuations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_cycles
		(timestamp, action_id, ticker, start_date, end_date, attempt, outcome, status, detail, rows, elapsed_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.ID, evt.Ticker, evt.StartDate, evt.EndDate,
		evt.Attempt, evt.Outcome, evt.Status, evt.Detail, evt.Rows,
		evt.Elapsed.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordValuation(evt *ValuationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO valuations
		(timestamp, holdings, priced, total_value, currency)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Holdings, evt.Priced, evt.TotalValue, evt.Currency,
	)
	return err
}

// CountCycles returns how many cycles were journalled for ticker.
func (r *SQLiteRecorder) CountCycles(ticker string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM fetch_cycles WHERE ticker = ?", ticker).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
