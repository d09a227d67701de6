package model

// StockProfile is the per-ticker enrichment fetched alongside price history:
// classification, ownership, the next earnings date, and recent headlines.
// Any field may be empty when the source has nothing for the symbol.
type StockProfile struct {
	Sector           string   `json:"sector,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	InstitutionalPct float64  `json:"institutional_ownership_pct,omitempty"` // percent of float, 0-100
	EarningsDate     string   `json:"earnings_date,omitempty"`               // YYYY-MM-DD
	News             []string `json:"news_headlines,omitempty"`
}
