// Package sector aggregates per-symbol return observations into a ranked
// relative-strength heatmap. Ranking is deterministic: sectors tied on average
// return keep the order in which they were first seen.
package sector

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"StockScan/internal/model"
)

// BuildHeatmap groups return observations by sector, averages the 1-month
// returns within each sector (rounded to 2 decimals), and ranks sectors
// descending. The sort is stable, so ties resolve to first-seen order.
func BuildHeatmap(returns []model.SectorReturn) []model.SectorRank {
	order := make([]string, 0, len(returns))
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range returns {
		if r.Sector == "" || r.Sector == "Unknown" {
			continue
		}
		if _, seen := sums[r.Sector]; !seen {
			order = append(order, r.Sector)
		}
		sums[r.Sector] += r.Return1M
		counts[r.Sector]++
	}

	ranks := make([]model.SectorRank, 0, len(order))
	for _, name := range order {
		avg := sums[name] / float64(counts[name])
		ranks = append(ranks, model.SectorRank{
			Sector:   name,
			AvgRet1M: math.Round(avg*100) / 100,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].AvgRet1M > ranks[j].AvgRet1M })
	return ranks
}

// RenderHeatmap produces the plain-text ranking handed to the analyzer prompt
// and the report.
func RenderHeatmap(ranks []model.SectorRank) string {
	if len(ranks) == 0 {
		return "No sector data available"
	}
	var b strings.Builder
	b.WriteString("Sector Heatmap (1M return):")
	for i, r := range ranks {
		sign := ""
		if r.AvgRet1M > 0 {
			sign = "+"
		}
		b.WriteString(fmt.Sprintf("\n  %d. %-25s %s%.2f%%", i+1, r.Sector, sign, r.AvgRet1M))
	}
	return b.String()
}
