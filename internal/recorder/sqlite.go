package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockScan/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_results (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			bullish_signal   INTEGER NOT NULL,
			confidence_score INTEGER,
			watchlist_tier   TEXT,
			market_structure TEXT,
			patterns         TEXT,
			sector           TEXT,
			earnings         TEXT,
			news_sentiment   TEXT,
			darvas_box       TEXT,
			consolidation    TEXT,
			volume_analysis  TEXT,
			reasoning        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_results_ts ON scan_results(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_results_ticker ON scan_results(ticker)`,
		`CREATE TABLE IF NOT EXISTS sector_heatmap (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			rank      INTEGER NOT NULL,
			sector    TEXT NOT NULL,
			avg_ret_1m REAL NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// RecordScan inserts one row per scanned symbol.
func (r *SQLiteRecorder) RecordScan(ts time.Time, results []*model.ScanResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO scan_results
		(timestamp, ticker, bullish_signal, confidence_score, watchlist_tier,
		 market_structure, patterns, sector, earnings, news_sentiment,
		 darvas_box, consolidation, volume_analysis, reasoning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		bullish := 0
		if res.BullishSignal {
			bullish = 1
		}
		patterns, _ := json.Marshal(res.Patterns)
		if _, err := stmt.Exec(ts.Unix(), res.Ticker, bullish, res.ConfidenceScore,
			res.WatchlistTier, res.MarketStructure, string(patterns),
			res.Sector, res.EarningsProximity, res.NewsSentiment,
			res.DarvasBox, res.Consolidation, res.VolumeAnalysis, res.Reasoning); err != nil {
			return fmt.Errorf("insert result %s: %w", res.Ticker, err)
		}
	}
	return tx.Commit()
}

// RecordHeatmap inserts the ranked sector rows for one sweep.
func (r *SQLiteRecorder) RecordHeatmap(ts time.Time, ranks []model.SectorRank) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, rank := range ranks {
		if _, err := tx.Exec(
			`INSERT INTO sector_heatmap (timestamp, rank, sector, avg_ret_1m) VALUES (?, ?, ?, ?)`,
			ts.Unix(), i+1, rank.Sector, rank.AvgRet1M); err != nil {
			return fmt.Errorf("insert heatmap row: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }
