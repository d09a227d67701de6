package sector

import (
	"math"

	"github.com/rs/zerolog/log"

	"StockScan/internal/collector"
	"StockScan/internal/config"
	"StockScan/internal/model"
)

const (
	bars1M = 21 // trading days in one month
	bars3M = 63
)

// Sweep fetches recent history for every proxy ETF in the table and computes
// its 1-month and 3-month returns. Proxies that cannot be fetched are logged
// and skipped; the sweep never fails as a whole.
func Sweep(fetcher collector.Fetcher, proxies []config.SectorProxy) []model.SectorReturn {
	returns := make([]model.SectorReturn, 0, len(proxies))
	for _, p := range proxies {
		table, err := fetcher.FetchDaily(p.Symbol, "6mo")
		if err != nil {
			log.Warn().Str("sector", p.Name).Str("symbol", p.Symbol).Err(err).Msg("sector fetch failed")
			continue
		}
		series, err := collector.Normalize(p.Symbol, table)
		if err != nil {
			log.Warn().Str("sector", p.Name).Str("symbol", p.Symbol).Err(err).Msg("sector data unusable")
			continue
		}
		returns = append(returns, model.SectorReturn{
			Sector:   p.Name,
			Symbol:   p.Symbol,
			Return1M: trailingReturn(series, bars1M),
			Return3M: trailingReturn(series, bars3M),
		})
	}
	return returns
}

// trailingReturn is the percent change from n bars back to the latest close,
// rounded to 2 decimals. 0 when not enough history exists.
func trailingReturn(s *model.PriceSeries, n int) float64 {
	if s.Len() <= n {
		return 0
	}
	base := s.Bars[s.Len()-1-n].Close
	if base <= 0 {
		return 0
	}
	last := s.Last().Close
	return math.Round((last/base-1)*100*100) / 100
}
