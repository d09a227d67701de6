package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/model"
)

func TestRollingMean_GatesOnWindow(t *testing.T) {
	// Hand-calculated SMA(3): 100, 102, 104, 103, 105
	// -> NaN, NaN, 102, 103, 104
	got := RollingMean([]float64{100, 102, 104, 103, 105}, 3)
	require.Len(t, got, 5)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 102.0, got[2], 1e-9)
	assert.InDelta(t, 103.0, got[3], 1e-9)
	assert.InDelta(t, 104.0, got[4], 1e-9)
}

func TestRollingMean_WindowLargerThanInput(t *testing.T) {
	got := RollingMean([]float64{1, 2}, 5)
	for i, v := range got {
		assert.True(t, math.IsNaN(v), "index %d should be NaN", i)
	}
}

func TestRollingMean_RecoversAfterNaN(t *testing.T) {
	// A NaN poisons only the windows that contain it; once it slides out,
	// the mean resumes from the remaining finite values.
	got := RollingMean([]float64{1, math.NaN(), 3, 5, 7}, 2)
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
	assert.InDelta(t, 4.0, got[3], 1e-9)
	assert.InDelta(t, 6.0, got[4], 1e-9)
}

func TestMeanTail_SkipsNaN(t *testing.T) {
	values := []float64{math.NaN(), 2, 4}
	assert.InDelta(t, 3.0, MeanTail(values, 3), 1e-9)
	assert.InDelta(t, 3.0, MeanTail(values, 10), 1e-9)
	assert.True(t, math.IsNaN(MeanTail([]float64{math.NaN()}, 5)))
}

func TestTrueRanges(t *testing.T) {
	bars := []model.PriceBar{
		{High: 105, Low: 100, Close: 103},
		{High: 106, Low: 102, Close: 104}, // hl=4, |106-103|=3, |102-103|=1 -> 4
		{High: 112, Low: 108, Close: 110}, // hl=4, |112-104|=8, |108-104|=4 -> 8 (gap up)
	}
	tr := TrueRanges(bars)
	require.Len(t, tr, 3)
	assert.True(t, math.IsNaN(tr[0]), "first bar has no previous close")
	assert.InDelta(t, 4.0, tr[1], 1e-9)
	assert.InDelta(t, 8.0, tr[2], 1e-9)
}

func TestATRSeries_ConstantRange(t *testing.T) {
	// Every bar has the same 2-point range and no overnight gap, so each
	// true range is 2 and the rolling mean settles at 2.
	s := closesSeries(make([]float64, 30))
	for i := range s.Bars {
		s.Bars[i].Open = 100
		s.Bars[i].High = 101
		s.Bars[i].Low = 99
		s.Bars[i].Close = 100
	}
	atr := ATRSeries(s.Bars, 14)
	require.Len(t, atr, 30)
	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(atr[i]), "index %d should be NaN", i)
	}
	for i := 14; i < 30; i++ {
		assert.InDelta(t, 2.0, atr[i], 1e-9)
	}
}

func TestATRSeries_TooShort(t *testing.T) {
	s := flatSeries(10, 100)
	atr := ATRSeries(s.Bars, 14)
	for i, v := range atr {
		assert.True(t, math.IsNaN(v), "index %d should be NaN", i)
	}
}

func TestTrailingMaxMin(t *testing.T) {
	values := []float64{5, 9, 1, 7, 3}
	assert.Equal(t, 7.0, TrailingMax(values, 3))
	assert.Equal(t, 1.0, TrailingMin(values, 3))
	assert.Equal(t, 9.0, TrailingMax(values, 10))
	assert.Equal(t, 1.0, TrailingMin(values, 10))
}
