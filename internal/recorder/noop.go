package recorder

import (
	"time"

	"StockScan/internal/model"
)

// NoopRecorder discards everything. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(time.Time, []*model.ScanResult) error   { return nil }
func (n *NoopRecorder) RecordHeatmap(time.Time, []model.SectorRank) error { return nil }
func (n *NoopRecorder) Close() error                                      { return nil }
