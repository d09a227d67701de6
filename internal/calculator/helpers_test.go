package calculator

import (
	"time"

	"StockScan/internal/model"
)

var testEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) // a Monday

// seriesFromBars wraps bars into a PriceSeries.
func seriesFromBars(bars []model.PriceBar) *model.PriceSeries {
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

// flatSeries builds n consecutive daily bars with identical OHLC.
func flatSeries(n int, price float64) *model.PriceSeries {
	bars := make([]model.PriceBar, n)
	for i := range bars {
		bars[i] = model.PriceBar{
			Date:   testEpoch.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1000,
		}
	}
	return seriesFromBars(bars)
}

// closesSeries builds bars from close prices with a small symmetric range
// around each close.
func closesSeries(closes []float64) *model.PriceSeries {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   testEpoch.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return seriesFromBars(bars)
}
