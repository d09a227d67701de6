package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTechnicalProfile_ConstantClose(t *testing.T) {
	// Equality is "below" on every comparison, so a flat series is
	// bearish with a zero spread.
	p := ComputeTechnicalProfile(flatSeries(200, 50), FastPeriod, SlowPeriod)
	assert.Equal(t, 0.0, p.SpreadPct)
	assert.Equal(t, "below (bearish)", p.FastVsSlow)
	assert.Equal(t, "below", p.PriceVsFast)
	assert.Equal(t, "below", p.PriceVsSlow)
	assert.Equal(t, 0.0, p.PriceToFastPct)
	assert.Equal(t, 0.0, p.PriceToSlowPct)
	assert.Equal(t, 50.0, p.CurrentClose)
}

func TestComputeTechnicalProfile_RisingSeriesIsBullish(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	p := ComputeTechnicalProfile(closesSeries(closes), FastPeriod, SlowPeriod)
	assert.Equal(t, "above", p.PriceVsFast)
	assert.Equal(t, "above", p.PriceVsSlow)
	assert.Equal(t, "above (bullish)", p.FastVsSlow)
	assert.Greater(t, p.SpreadPct, 0.0)
	assert.Greater(t, p.PriceToFastPct, 0.0)
	assert.Greater(t, p.PriceToSlowPct, p.PriceToFastPct)
}

func TestComputeTechnicalProfile_SMAValues(t *testing.T) {
	// 200 bars at 100, last 50 at 200:
	// fast SMA(50) = 200, slow SMA(150) = (100*100 + 50*200)/150 = 133.33
	closes := make([]float64, 200)
	for i := range closes {
		if i >= 150 {
			closes[i] = 200
		} else {
			closes[i] = 100
		}
	}
	p := ComputeTechnicalProfile(closesSeries(closes), FastPeriod, SlowPeriod)
	assert.InDelta(t, 200.0, p.SMAFast, 1e-9)
	assert.InDelta(t, 133.33, p.SMASlow, 0.01)
	assert.InDelta(t, 50.0, p.SpreadPct, 0.01) // 200/133.33 - 1 = 50%
}

func TestComputeTechnicalProfile_ShortSeriesUsesAvailableBars(t *testing.T) {
	// 10 bars: both SMAs collapse to the 10-bar mean.
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	p := ComputeTechnicalProfile(closesSeries(closes), FastPeriod, SlowPeriod)
	assert.InDelta(t, 5.5, p.SMAFast, 1e-9)
	assert.InDelta(t, 5.5, p.SMASlow, 1e-9)
	assert.Equal(t, 0.0, p.SpreadPct)
}
