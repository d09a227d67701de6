package calculator

import "StockScan/internal/model"

// Default SMA pair for the technical profile.
const (
	FastPeriod = 50
	SlowPeriod = 150
)

// smaTail returns the mean of the last `period` closes, or of all available
// closes when the series is shorter than the period.
func smaTail(closes []float64, period int) float64 {
	n := period
	if len(closes) < n {
		n = len(closes)
	}
	sum := 0.0
	for _, v := range closes[len(closes)-n:] {
		sum += v
	}
	return sum / float64(n)
}

// ComputeTechnicalProfile derives the SMA pair relationship from the full
// series. Equality counts as "below" on every comparison (strict rule), so a
// flat series classifies as bearish.
func ComputeTechnicalProfile(s *model.PriceSeries, fast, slow int) model.TechnicalProfile {
	closes := s.Closes()
	current := closes[len(closes)-1]
	smaFast := smaTail(closes, fast)
	smaSlow := smaTail(closes, slow)

	p := model.TechnicalProfile{
		CurrentClose:   round2(current),
		SMAFast:        round2(smaFast),
		SMASlow:        round2(smaSlow),
		PriceVsFast:    "below",
		PriceVsSlow:    "below",
		FastVsSlow:     "below (bearish)",
		SpreadPct:      round2((smaFast/smaSlow - 1) * 100),
		PriceToFastPct: round2((current/smaFast - 1) * 100),
		PriceToSlowPct: round2((current/smaSlow - 1) * 100),
	}
	if current > smaFast {
		p.PriceVsFast = "above"
	}
	if current > smaSlow {
		p.PriceVsSlow = "above"
	}
	if smaFast > smaSlow {
		p.FastVsSlow = "above (bullish)"
	}
	return p
}
