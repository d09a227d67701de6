package collector

import (
	"time"

	"StockScan/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Tables   map[string]*model.RawTable // per symbol; nil entry means empty table
	Profiles map[string]*model.StockProfile
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(symbol, _ string) (*model.RawTable, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if t, ok := m.Tables[symbol]; ok && t != nil {
		return t, nil
	}
	return &model.RawTable{}, nil
}

func (m *MockFetcher) FetchProfile(symbol string) (*model.StockProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Profiles[symbol]; ok && p != nil {
		return p, nil
	}
	return &model.StockProfile{}, nil
}

// TableFromBars builds a single-label raw table from bars, the shape a
// single-symbol fetch produces.
func TableFromBars(bars []model.PriceBar) *model.RawTable {
	t := &model.RawTable{}
	open := make([]float64, len(bars))
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	cls := make([]float64, len(bars))
	vol := make([]float64, len(bars))
	for i, b := range bars {
		t.Dates = append(t.Dates, b.Date)
		open[i], high[i], low[i], cls[i] = b.Open, b.High, b.Low, b.Close
		vol[i] = float64(b.Volume)
	}
	t.Columns = []model.RawColumn{
		{Labels: []string{"Open"}, Values: open},
		{Labels: []string{"High"}, Values: high},
		{Labels: []string{"Low"}, Values: low},
		{Labels: []string{"Close"}, Values: cls},
		{Labels: []string{"Volume"}, Values: vol},
	}
	return t
}

// GenerateBars produces a gently drifting synthetic series around basePrice,
// one bar per weekday ending today.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, 0, count)
	d := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(count*7/5 + 7))
	for len(bars) < count {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(len(bars)-count/2)*0.001)
		bars = append(bars, model.PriceBar{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		})
	}
	return bars
}
