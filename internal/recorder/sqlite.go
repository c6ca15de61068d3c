package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id        TEXT PRIMARY KEY,
			kind      TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			run_id      TEXT NOT NULL REFERENCES runs(id),
			day         INTEGER NOT NULL,
			price_index INTEGER NOT NULL,
			action      TEXT NOT NULL,
			short_ma    REAL,
			long_ma     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id)`,

		`CREATE TABLE IF NOT EXISTS simulation_summaries (
			run_id        TEXT PRIMARY KEY REFERENCES runs(id),
			initial       REAL,
			years         INTEGER,
			trials        INTEGER,
			mean          REAL,
			stddev        REAL,
			p10           REAL,
			p50           REAL,
			p90           REAL,
			mean_return   REAL,
			stddev_return REAL,
			seed          INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS simulation_trials (
			run_id  TEXT NOT NULL REFERENCES runs(id),
			trial   INTEGER NOT NULL,
			balance REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trials_run ON simulation_trials(run_id)`,

		`CREATE TABLE IF NOT EXISTS allocations (
			run_id   TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			category TEXT,
			priority INTEGER,
			amount   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_run ON allocations(run_id)`,

		`CREATE TABLE IF NOT EXISTS clusters (
			run_id          TEXT NOT NULL REFERENCES runs(id),
			cluster         INTEGER NOT NULL,
			centroid_amount REAL,
			centroid_date   REAL,
			size            INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS cluster_members (
			run_id  TEXT NOT NULL REFERENCES runs(id),
			cluster INTEGER NOT NULL,
			amount  REAL,
			date    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cluster_members_run ON cluster_members(run_id)`,

		`CREATE TABLE IF NOT EXISTS repayment_steps (
			run_id      TEXT NOT NULL REFERENCES runs(id),
			month       INTEGER NOT NULL,
			debt_index  INTEGER NOT NULL,
			debt_name   TEXT,
			payment     REAL,
			remaining   REAL,
			annual_rate REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_repayment_run ON repayment_steps(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// withRun inserts a runs row and calls fill inside one transaction.
func (r *SQLiteRecorder) withRun(kind, note string, fill func(tx *sql.Tx, id string) error) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO runs (id, kind, timestamp, note) VALUES (?,?,?,?)`,
		id, kind, r.now().Unix(), note); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("insert run: %w", err)
	}
	if err := fill(tx, id); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.log.Debug("run recorded", zap.String("kind", kind), zap.String("run_id", id))
	return id, nil
}

func (r *SQLiteRecorder) RecordSignals(run *SignalRun) (string, error) {
	res := run.Result
	note := fmt.Sprintf("short=%d long=%d source=%s", res.ShortPeriod, res.LongPeriod, run.Source)
	return r.withRun(KindCrossover, note, func(tx *sql.Tx, id string) error {
		for _, s := range res.Signals {
			// Day is 1-based over the aligned series
			i := s.Day - 1
			if _, err := tx.Exec(`INSERT INTO signals
				(run_id, day, price_index, action, short_ma, long_ma)
				VALUES (?,?,?,?,?,?)`,
				id, s.Day, s.PriceIndex, string(s.Action), res.ShortMA[i], res.LongMA[i],
			); err != nil {
				return fmt.Errorf("insert signal: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordSimulation(run *SimulationRun) (string, error) {
	sum := run.Summary
	note := fmt.Sprintf("initial=%.2f years=%d trials=%d", sum.Initial, sum.Years, len(sum.Trials))
	return r.withRun(KindSimulation, note, func(tx *sql.Tx, id string) error {
		if _, err := tx.Exec(`INSERT INTO simulation_summaries
			(run_id, initial, years, trials, mean, stddev, p10, p50, p90, mean_return, stddev_return, seed)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			id, sum.Initial, sum.Years, len(sum.Trials), sum.Mean, sum.StdDev,
			sum.P10, sum.P50, sum.P90, run.MeanReturn, run.StdDevReturn, int64(run.Seed),
		); err != nil {
			return fmt.Errorf("insert simulation summary: %w", err)
		}
		for i, balance := range sum.Trials {
			if _, err := tx.Exec(`INSERT INTO simulation_trials (run_id, trial, balance) VALUES (?,?,?)`,
				id, i+1, balance); err != nil {
				return fmt.Errorf("insert trial: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordAllocation(run *AllocationRun) (string, error) {
	note := fmt.Sprintf("budget=%.2f categories=%d", run.TotalBudget, len(run.Allocations))
	return r.withRun(KindAllocation, note, func(tx *sql.Tx, id string) error {
		for i, a := range run.Allocations {
			if _, err := tx.Exec(`INSERT INTO allocations
				(run_id, position, category, priority, amount)
				VALUES (?,?,?,?,?)`,
				id, i, a.Category.Name, a.Category.Priority, a.Amount,
			); err != nil {
				return fmt.Errorf("insert allocation: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordClusters(run *ClusterRun) (string, error) {
	res := run.Result
	note := fmt.Sprintf("k=%d iterations=%d source=%s", len(res.Clusters), res.Iterations, run.Source)
	return r.withRun(KindCluster, note, func(tx *sql.Tx, id string) error {
		for j, c := range res.Clusters {
			if _, err := tx.Exec(`INSERT INTO clusters
				(run_id, cluster, centroid_amount, centroid_date, size)
				VALUES (?,?,?,?,?)`,
				id, j+1, c.Centroid.Amount, c.Centroid.Date, len(c.Members),
			); err != nil {
				return fmt.Errorf("insert cluster: %w", err)
			}
			for _, e := range c.Members {
				if _, err := tx.Exec(`INSERT INTO cluster_members (run_id, cluster, amount, date) VALUES (?,?,?,?)`,
					id, j+1, e.Amount, e.Date); err != nil {
					return fmt.Errorf("insert cluster member: %w", err)
				}
			}
		}
		return nil
	})
}

func (r *SQLiteRecorder) RecordPayoff(run *PayoffRun) (string, error) {
	plan := run.Plan
	note := fmt.Sprintf("debts=%d payment=%.2f months=%d interest=%.2f",
		len(run.Debts), run.MonthlyPayment, plan.Months, plan.TotalInterest)
	return r.withRun(KindPayoff, note, func(tx *sql.Tx, id string) error {
		for _, s := range plan.Steps {
			if _, err := tx.Exec(`INSERT INTO repayment_steps
				(run_id, month, debt_index, debt_name, payment, remaining, annual_rate)
				VALUES (?,?,?,?,?,?,?)`,
				id, s.Month, s.DebtIndex, s.DebtName, s.Payment, s.Remaining, s.AnnualRate,
			); err != nil {
				return fmt.Errorf("insert repayment step: %w", err)
			}
		}
		return nil
	})
}

// RecentRuns lists the latest runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, kind, timestamp, note FROM runs
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			info RunInfo
			ts   int64
			note sql.NullString
		)
		if err := rows.Scan(&info.ID, &info.Kind, &ts, &note); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.Timestamp = time.Unix(ts, 0)
		info.Note = note.String
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
