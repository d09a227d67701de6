// Package scanner orchestrates one full watchlist scan: fetch and normalize
// each symbol's history, run the signal engine, sweep the sector proxies,
// hand the evidence to the analyzer, then report, record, and notify.
package scanner

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockScan/internal/analyzer"
	"StockScan/internal/calculator"
	"StockScan/internal/collector"
	"StockScan/internal/config"
	"StockScan/internal/model"
	"StockScan/internal/notifier"
	"StockScan/internal/recorder"
	"StockScan/internal/report"
	"StockScan/internal/sector"
)

// WatchItem is one row of the watchlist CSV.
type WatchItem struct {
	Ticker   string
	Exchange string
}

// Symbol renders the fetchable symbol: "TICKER" or "TICKER.EXCHANGE".
func (w WatchItem) Symbol() string {
	if w.Exchange != "" {
		return w.Ticker + "." + w.Exchange
	}
	return w.Ticker
}

// ReadWatchlist parses a CSV with "ticker" and optional "exchange" columns.
func ReadWatchlist(path string) ([]WatchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	tickerCol, exchangeCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "ticker":
			tickerCol = i
		case "exchange":
			exchangeCol = i
		}
	}
	if tickerCol < 0 {
		return nil, fmt.Errorf("watchlist: missing \"ticker\" column")
	}

	var items []WatchItem
	for _, rec := range records[1:] {
		if tickerCol >= len(rec) {
			continue
		}
		ticker := strings.TrimSpace(rec[tickerCol])
		if ticker == "" {
			continue
		}
		item := WatchItem{Ticker: ticker}
		if exchangeCol >= 0 && exchangeCol < len(rec) {
			item.Exchange = strings.TrimSpace(rec[exchangeCol])
		}
		items = append(items, item)
	}
	return items, nil
}

// Scanner wires the collaborators of one scan cycle together.
type Scanner struct {
	Cfg      *config.Config
	Fetcher  collector.Fetcher
	Analyzer *analyzer.Client
	Notifier notifier.Notifier
	Recorder recorder.Recorder
}

// New creates a Scanner with the given collaborators.
func New(cfg *config.Config, f collector.Fetcher, a *analyzer.Client, n notifier.Notifier, r recorder.Recorder) *Scanner {
	return &Scanner{Cfg: cfg, Fetcher: f, Analyzer: a, Notifier: n, Recorder: r}
}

// BuildContext runs the full signal engine over one normalized series. It is
// pure: same series in, same evidence out.
func (s *Scanner) BuildContext(series *model.PriceSeries, heatmapText string) *model.StockContext {
	return &model.StockContext{
		Ticker:        series.Symbol,
		Weekly:        calculator.SummarizeTrend(series),
		Profile:       calculator.ComputeTechnicalProfile(series, s.Cfg.Scan.SMAFast, s.Cfg.Scan.SMASlow),
		Box:           calculator.DetectDarvasBox(series),
		Consolidation: calculator.DetectConsolidation(series, s.Cfg.Scan.ConsolidationWindow),
		DailyRSI:      calculator.RSI(series, 14),
		SectorHeatmap: heatmapText,
	}
}

// scanSymbol fetches, normalizes, and computes evidence for one watch item.
// model.ErrNoData and validation failures skip the symbol without touching
// the rest of the scan.
func (s *Scanner) scanSymbol(item WatchItem, heatmapText string, ranks []model.SectorRank) (*model.StockContext, error) {
	symbol := item.Symbol()
	table, err := s.Fetcher.FetchDaily(symbol, s.Cfg.Scan.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	series, err := collector.Normalize(symbol, table)
	if err != nil {
		return nil, err
	}
	sctx := s.BuildContext(series, heatmapText)
	sctx.Ticker = item.Ticker
	s.enrichContext(sctx, item, ranks)
	return sctx, nil
}

// enrichContext attaches the optional per-ticker profile evidence (sector,
// ownership, earnings proximity, headlines). Enrichment is best-effort: a
// failed profile fetch logs and leaves the price evidence untouched.
func (s *Scanner) enrichContext(sctx *model.StockContext, item WatchItem, ranks []model.SectorRank) {
	pf, ok := s.Fetcher.(collector.ProfileFetcher)
	if !ok {
		return
	}
	profile, err := pf.FetchProfile(item.Symbol())
	if err != nil {
		log.Warn().Str("ticker", item.Ticker).Err(err).Msg("profile fetch failed")
		return
	}
	sctx.SectorPerformance = sectorPerformance(profile, ranks)
	if profile.InstitutionalPct > 0 {
		sctx.Institutional = fmt.Sprintf("institutions hold %.1f%% of shares", profile.InstitutionalPct)
	}
	sctx.EarningsProximity = collector.EarningsProximity(profile.EarningsDate, time.Now())
	sctx.News = profile.News
}

// sectorPerformance pairs the stock's own sector with that sector's ranked
// 1-month return when the sweep covered it.
func sectorPerformance(p *model.StockProfile, ranks []model.SectorRank) string {
	if p.Sector == "" {
		return ""
	}
	for _, r := range ranks {
		if r.Sector == p.Sector {
			sign := ""
			if r.AvgRet1M > 0 {
				sign = "+"
			}
			return fmt.Sprintf("%s (%s%.2f%% 1M)", p.Sector, sign, r.AvgRet1M)
		}
	}
	if p.Industry != "" {
		return p.Sector + " / " + p.Industry
	}
	return p.Sector
}

// Run executes one complete scan cycle.
func (s *Scanner) Run(ctx context.Context, watchlistPath, outputPath string, notify bool) error {
	items, err := ReadWatchlist(watchlistPath)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no stocks found in %s", watchlistPath)
	}
	log.Info().Int("stocks", len(items)).Str("watchlist", watchlistPath).Msg("scan started")

	// Sector sweep is independent of the watchlist; one pass per cycle.
	ranks := sector.BuildHeatmap(sector.Sweep(s.Fetcher, s.Cfg.Sectors))
	heatmapText := sector.RenderHeatmap(ranks)

	var contexts []*model.StockContext
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		sctx, err := s.scanSymbol(item, heatmapText, ranks)
		if err != nil {
			if errors.Is(err, model.ErrNoData) {
				log.Warn().Str("ticker", item.Ticker).Msg("skipping, no data")
			} else {
				log.Warn().Str("ticker", item.Ticker).Err(err).Msg("skipping, bad data")
			}
			continue
		}
		log.Info().
			Str("ticker", sctx.Ticker).
			Str("trend", sctx.Weekly.FourWeekTrend).
			Str("box", sctx.Box.String()).
			Str("consolidation", sctx.Consolidation.Label).
			Msg("evidence computed")
		contexts = append(contexts, sctx)
	}
	if len(contexts) == 0 {
		return fmt.Errorf("no stocks to analyze")
	}

	log.Info().Int("stocks", len(contexts)).Msg("analyzing")
	results := s.Analyzer.AnalyzeBatch(ctx, contexts)

	fmt.Print(report.Render(results, ranks))

	if outputPath != "" {
		if err := report.WriteJSON(outputPath, results); err != nil {
			return err
		}
		log.Info().Str("path", outputPath).Msg("results saved")
	}

	now := time.Now()
	if err := s.Recorder.RecordScan(now, results); err != nil {
		log.Warn().Err(err).Msg("record scan failed")
	}
	if err := s.Recorder.RecordHeatmap(now, ranks); err != nil {
		log.Warn().Err(err).Msg("record heatmap failed")
	}

	if notify {
		if err := s.Notifier.Notify(ctx, results); err != nil {
			log.Warn().Err(err).Msg("notification failed")
		}
	} else {
		log.Info().Msg("notifications skipped")
	}
	return nil
}
