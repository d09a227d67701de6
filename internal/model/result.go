package model

// StockContext bundles all computed evidence for one symbol. It is handed to
// the analyzer (prompt construction) and the report layer as-is.
type StockContext struct {
	Ticker            string             `json:"ticker"`
	Weekly            WeeklySummary      `json:"weekly_summary"`
	Profile           TechnicalProfile   `json:"technical_summary"`
	Box               DarvasBox          `json:"darvas_box"`
	Consolidation     ConsolidationState `json:"consolidation"`
	DailyRSI          float64            `json:"daily_rsi"`
	SectorHeatmap     string             `json:"sector_heatmap"`
	SectorPerformance string             `json:"sector_performance,omitempty"`
	Institutional     string             `json:"institutional_summary,omitempty"`
	EarningsProximity string             `json:"earnings_proximity,omitempty"`
	News              []string           `json:"news_headlines,omitempty"`
}

// ScanResult is the final verdict for one scanned symbol, combining the
// analyzer's judgment with the deterministic evidence it was shown.
type ScanResult struct {
	Ticker            string            `json:"ticker"`
	BullishSignal     bool              `json:"bullish_signal"`
	ConfidenceScore   int               `json:"confidence_score"`
	WatchlistTier     string            `json:"watchlist_tier"` // "Ready Now" / "Setting Up" / "Not Yet"
	MarketStructure   string            `json:"market_structure"`
	Patterns          []string          `json:"patterns"`
	TechnicalTriggers map[string]string `json:"technical_triggers"` // entry_zone, stop_loss, target_1
	VolumeAnalysis    string            `json:"volume_analysis"`
	NewsSentiment     string            `json:"news_sentiment"`
	Reasoning         string            `json:"reasoning"`
	Sector            string            `json:"sector"`
	EarningsProximity string            `json:"earnings_proximity"`
	DarvasBox         string            `json:"darvas_box"`
	Consolidation     string            `json:"consolidation"`
}
