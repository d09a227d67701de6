package calculator

import (
	"fmt"
	"math"

	"StockScan/internal/model"
)

// DefaultRangeWindow is the range-compression window used when the caller
// passes a non-positive one.
const DefaultRangeWindow = 20

const (
	atrPeriod   = 14
	atrBaseline = 50 // ATR values averaged for the compression baseline
	minAtrBars  = 50 // minimum bars before the detector produces numbers
)

// DetectConsolidation classifies volatility compression: the latest ATR(14)
// against the mean of the last 50 ATR values, plus a simple range-compression
// percentage over the given window (DefaultRangeWindow when <= 0). Fewer than
// 50 bars is a defined degenerate outcome, not an error.
func DetectConsolidation(s *model.PriceSeries, window int) model.ConsolidationState {
	if window <= 0 {
		window = DefaultRangeWindow
	}
	if s.Len() < minAtrBars {
		return model.ConsolidationState{
			Label:   "none",
			Window:  window,
			Summary: "no consolidation (insufficient data)",
		}
	}
	// A window wider than the series measures over what exists.
	if window > s.Len() {
		window = s.Len()
	}

	atr := ATRSeries(s.Bars, atrPeriod)
	latestATR := atr[len(atr)-1]
	baseline := MeanTail(atr, atrBaseline)

	ratio := 0.0
	if !math.IsNaN(baseline) && baseline > 0 && !math.IsNaN(latestATR) {
		ratio = round2(latestATR / baseline)
	}

	tail := s.Bars[s.Len()-window:]
	high := math.Inf(-1)
	low := math.Inf(1)
	closeSum := 0.0
	for _, b := range tail {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
		closeSum += b.Close
	}
	meanClose := closeSum / float64(len(tail))
	rangePct := 0.0
	if meanClose > 0 {
		rangePct = round2((high - low) / meanClose * 100)
	}

	st := model.ConsolidationState{
		ATRRatio: ratio,
		RangePct: rangePct,
		Window:   window,
	}
	switch {
	case ratio < 0.5:
		st.Label = "tight"
		st.Summary = fmt.Sprintf("tight consolidation (%dd range %.2f%%, ATR ratio %.2f)", window, rangePct, ratio)
	case ratio < 0.75:
		st.Label = "moderate"
		st.Summary = fmt.Sprintf("moderate consolidation (%dd range %.2f%%, ATR ratio %.2f)", window, rangePct, ratio)
	default:
		st.Label = "none"
		st.Summary = fmt.Sprintf("no consolidation (ATR ratio %.2f, %dd range %.2f%%)", ratio, window, rangePct)
	}
	return st
}
