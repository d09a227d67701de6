package calculator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/model"
)

func TestDetectConsolidation_InsufficientData(t *testing.T) {
	// Exactly 49 bars is one short of the minimum, whatever the prices do.
	s := flatSeries(49, 100)
	st := DetectConsolidation(s, 0)
	assert.Equal(t, "no consolidation (insufficient data)", st.Summary)
	assert.Equal(t, "none", st.Label)
	assert.Zero(t, st.ATRRatio)
}

func TestDetectConsolidation_FlatSeriesIsTight(t *testing.T) {
	// 60 identical bars: every true range is zero, so the ATR ratio is
	// the hardcoded 0 and the range compresses to nothing.
	st := DetectConsolidation(flatSeries(60, 100), 0)
	assert.Equal(t, 0.0, st.ATRRatio)
	assert.Equal(t, 0.0, st.RangePct)
	assert.Equal(t, "tight", st.Label)
	assert.Contains(t, st.Summary, "tight consolidation")
	assert.Contains(t, st.Summary, "20d")
}

func TestDetectConsolidation_RatioNonNegative(t *testing.T) {
	// Alternating closes give non-zero true ranges everywhere.
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i%2)*5
	}
	st := DetectConsolidation(closesSeries(closes), 0)
	assert.GreaterOrEqual(t, st.ATRRatio, 0.0)
	assert.Greater(t, st.RangePct, 0.0)
}

func TestDetectConsolidation_SteadyVolatilityIsNone(t *testing.T) {
	// Constant 2-point daily ranges: latest ATR equals the baseline mean,
	// ratio 1.0, no compression.
	bars := make([]model.PriceBar, 80)
	for i := range bars {
		bars[i] = model.PriceBar{
			Date: testEpoch.AddDate(0, 0, i),
			Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000,
		}
	}
	st := DetectConsolidation(seriesFromBars(bars), 0)
	assert.InDelta(t, 1.0, st.ATRRatio, 1e-9)
	assert.Equal(t, "none", st.Label)
	assert.Contains(t, st.Summary, "no consolidation")
}

func TestDetectConsolidation_RecentCompressionIsTight(t *testing.T) {
	// Wide ranges early, then a sharply narrower range for the last 20
	// bars: latest ATR well below the 50-value baseline.
	bars := make([]model.PriceBar, 100)
	for i := range bars {
		high, low := 110.0, 90.0
		if i >= 80 {
			high, low = 100.5, 99.5
		}
		bars[i] = model.PriceBar{
			Date: testEpoch.AddDate(0, 0, i),
			Open: 100, High: high, Low: low, Close: 100, Volume: 1000,
		}
	}
	st := DetectConsolidation(seriesFromBars(bars), 0)
	assert.Equal(t, "tight", st.Label)
	assert.Less(t, st.ATRRatio, 0.5)
	require.NotZero(t, st.RangePct)
	assert.Contains(t, st.Summary, fmt.Sprintf("ATR ratio %.2f", st.ATRRatio))
}

func TestDetectConsolidation_CustomWindow(t *testing.T) {
	st := DetectConsolidation(flatSeries(60, 100), 30)
	assert.Equal(t, 30, st.Window)
	assert.Contains(t, st.Summary, "30d")
}

func TestDetectConsolidation_WindowWiderThanSeries(t *testing.T) {
	// A recent listing with 60 bars and a configured 100-bar window must
	// clamp to the available history, not blow up.
	st := DetectConsolidation(flatSeries(60, 100), 100)
	assert.Equal(t, 60, st.Window)
	assert.Contains(t, st.Summary, "60d")
	assert.Equal(t, "tight", st.Label)
}
