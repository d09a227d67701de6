package model

// SectorReturn is one observation from the sector proxy sweep.
type SectorReturn struct {
	Sector   string  `json:"sector"`
	Symbol   string  `json:"etf_symbol"`
	Return1M float64 `json:"return_1m_pct"`
	Return3M float64 `json:"return_3m_pct"`
}

// SectorRank is one row of the ranked heatmap: a sector and its averaged
// 1-month return.
type SectorRank struct {
	Sector   string  `json:"sector"`
	AvgRet1M float64 `json:"avg_return_1m_pct"`
}
