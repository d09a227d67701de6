package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordScan(t *testing.T) {
	r := openTestRecorder(t)
	ts := time.Date(2025, time.June, 2, 22, 0, 0, 0, time.UTC)

	err := r.RecordScan(ts, []*model.ScanResult{
		{
			Ticker: "AAPL", BullishSignal: true, ConfidenceScore: 85,
			WatchlistTier: "Ready Now", MarketStructure: "Uptrend",
			Patterns:      []string{"Darvas breakout"},
			Sector:        "Technology (+3.20% 1M)",
			NewsSentiment: "Bullish",
			DarvasBox:     "box 95.00-120.00: breakout",
		},
		{Ticker: "XYZ", WatchlistTier: "Not Yet"},
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, r.db.QueryRow("SELECT COUNT(*) FROM scan_results").Scan(&count))
	assert.Equal(t, 2, count)

	var bullish int
	var tier, patterns, sector, sentiment string
	require.NoError(t, r.db.QueryRow(
		"SELECT bullish_signal, watchlist_tier, patterns, sector, news_sentiment FROM scan_results WHERE ticker = ?", "AAPL").
		Scan(&bullish, &tier, &patterns, &sector, &sentiment))
	assert.Equal(t, 1, bullish)
	assert.Equal(t, "Ready Now", tier)
	assert.JSONEq(t, `["Darvas breakout"]`, patterns)
	assert.Equal(t, "Technology (+3.20% 1M)", sector)
	assert.Equal(t, "Bullish", sentiment)
}

func TestRecordHeatmap(t *testing.T) {
	r := openTestRecorder(t)
	ts := time.Now()

	err := r.RecordHeatmap(ts, []model.SectorRank{
		{Sector: "Technology", AvgRet1M: 3.2},
		{Sector: "Energy", AvgRet1M: -1.1},
	})
	require.NoError(t, err)

	rows, err := r.db.Query("SELECT rank, sector, avg_ret_1m FROM sector_heatmap ORDER BY rank")
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		rank   int
		sector string
		ret    float64
	}
	var got []row
	for rows.Next() {
		var x row
		require.NoError(t, rows.Scan(&x.rank, &x.sector, &x.ret))
		got = append(got, x)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)
	assert.Equal(t, row{1, "Technology", 3.2}, got[0])
	assert.Equal(t, row{2, "Energy", -1.1}, got[1])
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.db")
	r1, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r1.RecordScan(time.Now(), []*model.ScanResult{{Ticker: "AAPL"}}))
	require.NoError(t, r1.Close())

	// Reopening must not wipe existing rows.
	r2, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r2.Close()

	var count int
	require.NoError(t, r2.db.QueryRow("SELECT COUNT(*) FROM scan_results").Scan(&count))
	assert.Equal(t, 1, count)
}
