package recorder

import (
	"time"

	"StockScan/internal/model"
)

// Recorder persists finished scans for later review (e.g. a Grafana panel on
// top of the SQLite file). Recording is best-effort: a failure is logged by
// callers, never propagated into the scan.
type Recorder interface {
	RecordScan(ts time.Time, results []*model.ScanResult) error
	RecordHeatmap(ts time.Time, ranks []model.SectorRank) error
	Close() error
}
