package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"WeekdayCycle/internal/model"
)

// SQLiteRecorder persists backtest runs and their cycles to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across statements.
	db.SetMaxOpenConns(1)

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS backtest_runs (
			run_id          TEXT PRIMARY KEY,
			finished_at     INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			buy_weekday     TEXT NOT NULL,
			sell_weekday    TEXT NOT NULL,
			start_date      TEXT,
			end_date        TEXT,
			initial_capital REAL,
			final_capital   REAL,
			total_profit    REAL,
			zero_open_count INTEGER,
			cycles          INTEGER,
			wins            INTEGER,
			losses          INTEGER,
			mean_return     REAL,
			stddev_return   REAL,
			max_drawdown    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished ON backtest_runs(finished_at)`,

		`CREATE TABLE IF NOT EXISTS backtest_cycles (
			run_id            TEXT NOT NULL REFERENCES backtest_runs(run_id),
			seq               INTEGER NOT NULL,
			buy_date          TEXT NOT NULL,
			buy_open          REAL,
			sell_date         TEXT NOT NULL,
			sell_close        REAL,
			capital_in        REAL,
			btc_owned         REAL,
			capital_out       REAL,
			profit            REAL,
			cumulative_profit REAL,
			PRIMARY KEY (run_id, seq)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run summary and every cycle in one transaction.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, res *model.Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	s := res.Stats
	_, err = tx.ExecContext(ctx, `INSERT INTO backtest_runs
		(run_id, finished_at, symbol, buy_weekday, sell_weekday, start_date, end_date,
		 initial_capital, final_capital, total_profit, zero_open_count,
		 cycles, wins, losses, mean_return, stddev_return, max_drawdown)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.RunID, finishedAt(res).Unix(), res.Symbol, res.BuyWeekday.String(), res.SellWeekday.String(),
		res.Start.Format(model.DateLayout), res.End.Format(model.DateLayout),
		res.InitialCapital, res.FinalCapital, res.TotalProfit, res.ZeroOpenCount,
		s.Cycles, s.Wins, s.Losses, s.MeanReturn, s.StdDevReturn, s.MaxDrawdown,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO backtest_cycles
		(run_id, seq, buy_date, buy_open, sell_date, sell_close,
		 capital_in, btc_owned, capital_out, profit, cumulative_profit)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare cycle insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range res.Cycles {
		if _, err := stmt.ExecContext(ctx,
			res.RunID, i, c.Buy.Date.Format(model.DateLayout), c.Buy.Open,
			c.Sell.Date.Format(model.DateLayout), c.Sell.Close,
			c.CapitalIn, c.BTCOwned, c.CapitalOut, c.Profit, c.CumulativeProfit,
		); err != nil {
			return fmt.Errorf("insert cycle %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.Debug("run recorded", zap.String("run_id", res.RunID), zap.Int("cycles", len(res.Cycles)))
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

func finishedAt(res *model.Result) time.Time {
	if res.FinishedAt.IsZero() {
		return time.Now()
	}
	return res.FinishedAt
}
