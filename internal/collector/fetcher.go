package collector

import "StockScan/internal/model"

// Fetcher retrieves raw daily price tables for one symbol. Implementations
// hand back the table untouched; validation and flattening belong to
// Normalize.
type Fetcher interface {
	// FetchDaily returns daily OHLCV history over a Yahoo-style range
	// string ("1mo", "3mo", "1y", ...). A healthy fetch of an unknown
	// symbol yields an empty table, not an error.
	FetchDaily(symbol, rng string) (*model.RawTable, error)
	Name() string
}

// ProfileFetcher is the optional enrichment side of a data source: sector,
// ownership, earnings date, headlines. Sources that cannot provide it simply
// don't implement it; the scan degrades to bare price evidence.
type ProfileFetcher interface {
	FetchProfile(symbol string) (*model.StockProfile, error)
}
