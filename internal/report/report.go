// Package report renders finished scans for humans (ANSI terminal summary)
// and machines (JSON results file). It only formats what the engine and the
// analyzer already computed.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"StockScan/internal/model"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
	white   = "\033[97m"
)

var tierOrder = []string{"Ready Now", "Setting Up", "Not Yet"}

var tierColors = map[string]string{
	"Ready Now":  green,
	"Setting Up": yellow,
	"Not Yet":    red,
}

// Render builds the full terminal report: heatmap, tier-grouped results, and
// the bullish tally.
func Render(results []*model.ScanResult, heatmap []model.SectorRank) string {
	var b strings.Builder

	b.WriteString(renderHeatmapANSI(heatmap))
	b.WriteString("\n\n")

	groups := map[string][]*model.ScanResult{}
	for _, r := range results {
		tier := r.WatchlistTier
		if _, known := tierColors[tier]; !known {
			tier = "Not Yet"
		}
		groups[tier] = append(groups[tier], r)
	}

	rule := strings.Repeat("=", 70)
	b.WriteString(bold + white + rule + reset + "\n")
	b.WriteString(bold + white + "  SCAN RESULTS" + reset + "\n")
	b.WriteString(bold + white + rule + reset + "\n")

	bullish := 0
	for _, tier := range tierOrder {
		rs := groups[tier]
		if len(rs) == 0 {
			continue
		}
		color := tierColors[tier]
		b.WriteString(fmt.Sprintf("\n  %s%s %s %s %s(%d stocks)%s\n",
			color, bold, strings.ToUpper(tier), reset, dim, len(rs), reset))
		b.WriteString("  " + dim + strings.Repeat("-", 66) + reset + "\n")
		for _, r := range rs {
			if r.BullishSignal {
				bullish++
			}
			writeResult(&b, r)
		}
	}

	b.WriteString(bold + white + rule + reset + "\n")
	b.WriteString(fmt.Sprintf("  %sTotal: %s%d%s%s/%d bullish signals%s\n",
		bold, green, bullish, reset, bold, len(results), reset))
	b.WriteString(fmt.Sprintf("  %sReady Now: %d%s | %sSetting Up: %d%s | %sNot Yet: %d%s\n",
		green, len(groups["Ready Now"]), reset,
		yellow, len(groups["Setting Up"]), reset,
		red, len(groups["Not Yet"]), reset))
	b.WriteString(bold + white + rule + reset + "\n")
	return b.String()
}

func writeResult(b *strings.Builder, r *model.ScanResult) {
	signal := dim + "---" + reset
	if r.BullishSignal {
		signal = green + bold + "BULLISH" + reset
	}

	confColor := red
	switch {
	case r.ConfidenceScore >= 70:
		confColor = green + bold
	case r.ConfidenceScore >= 40:
		confColor = yellow
	}

	structColor := yellow
	lower := strings.ToLower(r.MarketStructure)
	switch {
	case strings.Contains(lower, "uptrend"):
		structColor = green
	case strings.Contains(lower, "downtrend"):
		structColor = red
	}

	b.WriteString(fmt.Sprintf("  %s%s%-8s%s %s  conf=%s%d%s  %s%s%s\n",
		bold, white, r.Ticker, reset, signal,
		confColor, r.ConfidenceScore, reset,
		structColor, r.MarketStructure, reset))
	b.WriteString(fmt.Sprintf("  %s         sector: %s%s%s%s  %s| earnings: %s%s\n",
		dim, reset, cyan, orNA(r.Sector), reset, dim, reset, orNA(r.EarningsProximity)))

	sentiment := orNA(r.NewsSentiment)
	sentColor := dim
	lowerSent := strings.ToLower(sentiment)
	switch {
	case strings.Contains(lowerSent, "bullish"):
		sentColor = green
	case strings.Contains(lowerSent, "bearish"):
		sentColor = red
	}
	b.WriteString(fmt.Sprintf("  %s         sentiment: %s%s%s%s  %s| %s%s\n",
		dim, reset, sentColor, sentiment, reset, dim, reset, orNA(r.Consolidation)))

	if r.DarvasBox != "" && !strings.Contains(strings.ToLower(r.DarvasBox), "none") {
		b.WriteString(fmt.Sprintf("  %s         darvas: %s%s%s%s\n", dim, reset, magenta, r.DarvasBox, reset))
	}

	if t := r.TechnicalTriggers; t != nil {
		entry, stop, target := t["entry_zone"], t["stop_loss"], t["target_1"]
		if entry != "" || stop != "" || target != "" {
			b.WriteString(fmt.Sprintf("  %s         entry: %s%s%s%s  %sstop: %s%s%s%s  %starget: %s%s%s%s\n",
				dim, reset, green, entry, reset,
				dim, reset, red, stop, reset,
				dim, reset, cyan, target, reset))
		}
	}
	if r.Reasoning != "" {
		b.WriteString(fmt.Sprintf("  %s         %s%s\n", dim, r.Reasoning, reset))
	}
	b.WriteString("\n")
}

func renderHeatmapANSI(ranks []model.SectorRank) string {
	if len(ranks) == 0 {
		return "No sector data available"
	}
	var b strings.Builder
	b.WriteString(bold + cyan + "Sector Heatmap (1M avg return):" + reset)
	for i, r := range ranks {
		color, sign := dim, ""
		if r.AvgRet1M > 0 {
			color, sign = green, "+"
		} else if r.AvgRet1M < 0 {
			color = red
		}
		b.WriteString(fmt.Sprintf("\n  %s%d.%s %-25s %s%s%.2f%%%s",
			dim, i+1, reset, r.Sector, color, sign, r.AvgRet1M, reset))
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// WriteJSON saves the machine-readable results file.
func WriteJSON(path string, results []*model.ScanResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
