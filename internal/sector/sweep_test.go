package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/collector"
	"StockScan/internal/config"
	"StockScan/internal/model"
)

func TestSweep_ComputesReturnsAndSkipsFailures(t *testing.T) {
	fetcher := &collector.MockFetcher{Tables: map[string]*model.RawTable{
		"XLK": collector.TableFromBars(collector.GenerateBars(100, 126)),
		"XLE": collector.TableFromBars(collector.GenerateBars(80, 126)),
		// XLF missing: fetch succeeds with an empty table, normalize rejects it
	}}
	proxies := []config.SectorProxy{
		{Name: "Technology", Symbol: "XLK"},
		{Name: "Energy", Symbol: "XLE"},
		{Name: "Financials", Symbol: "XLF"},
	}

	returns := Sweep(fetcher, proxies)
	require.Len(t, returns, 2)
	assert.Equal(t, "Technology", returns[0].Sector)
	assert.Equal(t, "XLK", returns[0].Symbol)
	assert.NotZero(t, returns[0].Return1M, "rising mock series has a positive 1M return")
	assert.Greater(t, returns[0].Return3M, returns[0].Return1M)
	assert.Equal(t, "Energy", returns[1].Sector)
}

func TestTrailingReturn(t *testing.T) {
	s := &model.PriceSeries{Symbol: "X", Bars: []model.PriceBar{
		{Close: 100}, {Close: 105}, {Close: 110},
	}}

	assert.Equal(t, 10.0, trailingReturn(s, 2))
	assert.Equal(t, 0.0, trailingReturn(s, 3), "not enough history")
}
