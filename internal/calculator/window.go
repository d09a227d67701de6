// Package calculator implements the deterministic technical signal engine:
// rolling-window primitives and the detectors built on top of them. Every
// function is a pure transformation of its input series; nothing here holds
// state between calls or performs I/O.
package calculator

import (
	"math"

	"StockScan/internal/model"
)

// RollingMean computes the arithmetic mean over the trailing window at each
// position. Positions before a full window is available are NaN; callers must
// gate on length before reading trailing values. A window containing a NaN
// input yields NaN at that position, and the mean resumes once the NaN slides
// out of the window.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum, nans := 0.0, 0
	for i, v := range values {
		if math.IsNaN(v) {
			nans++
		} else {
			sum += v
		}
		if i >= window {
			if old := values[i-window]; math.IsNaN(old) {
				nans--
			} else {
				sum -= old
			}
		}
		if i >= window-1 && nans == 0 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// MeanTail returns the mean of the last n values, skipping NaN entries.
// Returns NaN when no finite value falls inside the tail.
func MeanTail(values []float64, n int) float64 {
	start := len(values) - n
	if start < 0 {
		start = 0
	}
	sum, count := 0.0, 0
	for _, v := range values[start:] {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// TrueRanges computes the True Range at each bar:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so index 0 is NaN.
func TrueRanges(bars []model.PriceBar) []float64 {
	out := make([]float64, len(bars))
	if len(bars) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATRSeries computes the Average True Range as a rolling mean of True Range
// over the given period, aligned with the input bars. A value at index i is
// defined once i >= period (period true ranges have accumulated).
func ATRSeries(bars []model.PriceBar, period int) []float64 {
	out := make([]float64, len(bars))
	for i := range out {
		out[i] = math.NaN()
	}
	tr := TrueRanges(bars)
	if len(tr) <= period || period <= 0 {
		return out
	}
	rm := RollingMean(tr[1:], period)
	for i, v := range rm {
		out[i+1] = v
	}
	return out
}

// TrailingMax returns the maximum over the last w values.
func TrailingMax(values []float64, w int) float64 {
	start := len(values) - w
	if start < 0 {
		start = 0
	}
	max := math.Inf(-1)
	for _, v := range values[start:] {
		if v > max {
			max = v
		}
	}
	return max
}

// TrailingMin returns the minimum over the last w values.
func TrailingMin(values []float64, w int) float64 {
	start := len(values) - w
	if start < 0 {
		start = 0
	}
	min := math.Inf(1)
	for _, v := range values[start:] {
		if v < min {
			min = v
		}
	}
	return min
}

// round2 rounds to 2 decimal places, the precision used by every reported
// percentage in this package.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place (52-week distance percentages).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
