package model

import "fmt"

// TechnicalProfile captures the SMA pair relationship for one symbol.
// Percentage fields are rounded to 2 decimals.
type TechnicalProfile struct {
	CurrentClose   float64 `json:"current_close"`
	SMAFast        float64 `json:"sma_fast"`
	SMASlow        float64 `json:"sma_slow"`
	PriceVsFast    string  `json:"price_vs_fast"` // "above" / "below"
	PriceVsSlow    string  `json:"price_vs_slow"`
	FastVsSlow     string  `json:"fast_vs_slow"` // "above (bullish)" / "below (bearish)"
	SpreadPct      float64 `json:"spread_pct"`
	PriceToFastPct float64 `json:"price_to_fast_pct"`
	PriceToSlowPct float64 `json:"price_to_slow_pct"`
}

// BoxStatus is the breakout state of a Darvas box.
type BoxStatus string

const (
	BoxNone      BoxStatus = "none"
	BoxWithin    BoxStatus = "within"
	BoxBreakout  BoxStatus = "breakout"
	BoxBreakdown BoxStatus = "breakdown"
)

// DarvasBox is the consolidation range found after a local high. At most one
// box per scan window; re-derived from scratch on every call.
type DarvasBox struct {
	Top    float64   `json:"top"`
	Bottom float64   `json:"bottom"`
	Status BoxStatus `json:"status"`
	Reason string    `json:"reason,omitempty"` // populated when Status == BoxNone
}

func (b DarvasBox) String() string {
	if b.Status == BoxNone {
		return fmt.Sprintf("none (%s)", b.Reason)
	}
	return fmt.Sprintf("box %.2f-%.2f: %s", b.Bottom, b.Top, b.Status)
}

// ConsolidationState is the ATR-compression tightness classification.
// Summary embeds the supporting numbers so consumers need not recompute them.
type ConsolidationState struct {
	ATRRatio float64 `json:"atr_ratio"`
	RangePct float64 `json:"range_pct"`
	Label    string  `json:"label"` // "tight" / "moderate" / "none"
	Window   int     `json:"window"`
	Summary  string  `json:"summary"`
}

// WeeklySummary is the multi-week trend digest built from the resampled
// weekly bars plus the full daily range.
type WeeklySummary struct {
	LatestClose         float64 `json:"latest_close"`
	AvgWeeklyVolume     int64   `json:"avg_weekly_volume"`
	FourWeekTrend       string  `json:"4_week_trend"` // "Up" / "Down" / "Insufficient data"
	DistanceFrom52wHigh string  `json:"distance_from_52w_high"`
	DistanceFrom52wLow  string  `json:"distance_from_52w_low"`
	High52w             float64 `json:"52w_high"`
	Low52w              float64 `json:"52w_low"`
}
