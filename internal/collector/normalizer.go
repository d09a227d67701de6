package collector

import (
	"fmt"
	"math"
	"strings"
	"time"

	"StockScan/internal/model"
)

// Normalize validates a raw price table and flattens it into a canonical
// PriceSeries. Layered column labels (from batch multi-symbol fetches) are
// collapsed by taking the outer label. An empty table reports
// model.ErrNoData; malformed numbers fail this symbol only.
func Normalize(symbol string, table *model.RawTable) (*model.PriceSeries, error) {
	if table == nil || len(table.Dates) == 0 {
		return nil, model.ErrNoData
	}

	cols := make(map[string][]float64, len(table.Columns))
	for _, c := range table.Columns {
		if len(c.Labels) == 0 {
			continue
		}
		name := c.Labels[0] // outer level wins; inner levels carry the symbol
		if _, dup := cols[name]; !dup {
			cols[name] = c.Values
		}
	}

	var fields [5][]float64
	for i, name := range []string{"Open", "High", "Low", "Close", "Volume"} {
		values, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("normalize %s: missing column %q", symbol, name)
		}
		if len(values) != len(table.Dates) {
			return nil, fmt.Errorf("normalize %s: column %q has %d rows, want %d",
				symbol, name, len(values), len(table.Dates))
		}
		fields[i] = values
	}

	bars := make([]model.PriceBar, 0, len(table.Dates))
	var prev time.Time
	for i, d := range table.Dates {
		o, h, l, c := fields[0][i], fields[1][i], fields[2][i], fields[3][i]
		v := fields[4][i]
		for _, x := range []float64{o, h, l, c, v} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("normalize %s: non-finite value at row %d", symbol, i)
			}
		}
		if l > h {
			return nil, fmt.Errorf("normalize %s: low %.4f above high %.4f at row %d", symbol, l, h, i)
		}
		if v < 0 {
			return nil, fmt.Errorf("normalize %s: negative volume at row %d", symbol, i)
		}
		if !prev.IsZero() && !d.After(prev) {
			return nil, fmt.Errorf("normalize %s: dates not strictly increasing at row %d", symbol, i)
		}
		prev = d
		bars = append(bars, model.PriceBar{
			Date:   d,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(v),
		})
	}

	return &model.PriceSeries{
		Symbol:    strings.ToUpper(symbol),
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}
