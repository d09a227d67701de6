package calculator

import (
	"fmt"
	"math"
	"time"

	"StockScan/internal/model"
)

// trendWeeks is how many trailing completed weeks feed the average volume.
const trendWeeks = 20

// weekEnd maps a date to the Sunday that closes its calendar week.
func weekEnd(d time.Time) time.Time {
	days := (7 - int(d.Weekday())) % 7
	e := d.AddDate(0, 0, days)
	return time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, e.Location())
}

// ResampleWeekly aggregates daily bars into calendar-week bars (weeks ending
// Sunday): first open, max high, min low, last close, summed volume. Weeks
// with no contributing bars are simply absent, never zero-filled.
func ResampleWeekly(s *model.PriceSeries) []model.WeeklyBar {
	var weeks []model.WeeklyBar
	for _, b := range s.Bars {
		end := weekEnd(b.Date)
		if len(weeks) == 0 || !weeks[len(weeks)-1].WeekEnd.Equal(end) {
			weeks = append(weeks, model.WeeklyBar{
				WeekEnd: end,
				Open:    b.Open,
				High:    b.High,
				Low:     b.Low,
				Close:   b.Close,
				Volume:  b.Volume,
			})
			continue
		}
		w := &weeks[len(weeks)-1]
		if b.High > w.High {
			w.High = b.High
		}
		if b.Low < w.Low {
			w.Low = b.Low
		}
		w.Close = b.Close
		w.Volume += b.Volume
	}
	return weeks
}

// SummarizeTrend builds the weekly digest: latest close, trailing average
// weekly volume, 52-week extremes over the full supplied series, and the
// 4-week trend direction. Needs at least 5 weekly bars for the trend; fewer
// yield the defined "Insufficient data" label, not an error.
func SummarizeTrend(s *model.PriceSeries) model.WeeklySummary {
	weekly := ResampleWeekly(s)
	latest := s.Last().Close

	high52w := math.Inf(-1)
	low52w := math.Inf(1)
	for _, b := range s.Bars {
		if b.High > high52w {
			high52w = b.High
		}
		if b.Low < low52w {
			low52w = b.Low
		}
	}

	var volSum int64
	start := len(weekly) - trendWeeks
	if start < 0 {
		start = 0
	}
	tail := weekly[start:]
	for _, w := range tail {
		volSum += w.Volume
	}
	var avgVol int64
	if len(tail) > 0 {
		avgVol = volSum / int64(len(tail))
	}

	trend := "Insufficient data"
	if len(weekly) >= 5 {
		close4wAgo := weekly[len(weekly)-5].Close
		if latest > close4wAgo {
			trend = "Up"
		} else {
			trend = "Down"
		}
	}

	return model.WeeklySummary{
		LatestClose:         round2(latest),
		AvgWeeklyVolume:     avgVol,
		FourWeekTrend:       trend,
		DistanceFrom52wHigh: fmt.Sprintf("%.1f%%", round1((1-latest/high52w)*100)),
		DistanceFrom52wLow:  fmt.Sprintf("%.1f%%", round1((latest/low52w-1)*100)),
		High52w:             round2(high52w),
		Low52w:              round2(low52w),
	}
}
