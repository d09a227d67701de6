package model

import (
	"errors"
	"time"
)

// ErrNoData signals that the upstream source returned zero rows for a symbol
// (invalid ticker, fetch outage). It is a recoverable outcome: the caller skips
// the security and moves on.
var ErrNoData = errors.New("no data returned")

// PriceBar represents a single daily OHLCV candlestick.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds the normalized daily history for one symbol, ordered by
// strictly increasing date. It is built once per fetch and never mutated.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. The normalizer guarantees length >= 1.
func (s *PriceSeries) Last() PriceBar { return s.Bars[len(s.Bars)-1] }

// Closes extracts the Close column.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// WeeklyBar is a calendar-week aggregate of daily bars: open of the first bar,
// max high, min low, close of the last bar, summed volume.
type WeeklyBar struct {
	WeekEnd time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

// RawColumn is one column of a raw fetch result. Batch multi-symbol downloads
// carry layered labels (field first, symbol second); single-symbol fetches
// carry just the field name.
type RawColumn struct {
	Labels []string
	Values []float64
}

// RawTable is the column-oriented payload handed to the normalizer before any
// validation has happened.
type RawTable struct {
	Dates   []time.Time
	Columns []RawColumn
}
