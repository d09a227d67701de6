package calculator

import "StockScan/internal/model"

// BoxLookback is the fixed tail window the box scan runs over.
const BoxLookback = 20

// minConsolidationBars is how many bars must hold at or below the top for the
// range to count as a consolidation.
const minConsolidationBars = 3

// DetectDarvasBox scans the most recent 20 bars for a consolidation box: a
// local maximum high followed by at least 3 bars that never exceed it. The box
// bottom is the lowest low of that consolidation tail, and the status is
// judged against the latest close. The scan is stateless; every call
// re-derives the box from the current tail window.
func DetectDarvasBox(s *model.PriceSeries) model.DarvasBox {
	if s.Len() < BoxLookback {
		return model.DarvasBox{Status: model.BoxNone, Reason: "insufficient data"}
	}
	window := s.Bars[s.Len()-BoxLookback:]

	topIdx := 0
	for i, b := range window {
		if b.High > window[topIdx].High {
			topIdx = i
		}
	}
	top := window[topIdx].High

	after := window[topIdx+1:]
	if len(after) < minConsolidationBars {
		return model.DarvasBox{Status: model.BoxNone, Reason: "new high too recent"}
	}

	contained := 0
	for _, b := range after {
		if b.High > top {
			return model.DarvasBox{Status: model.BoxNone, Reason: "high exceeded"}
		}
		contained++
	}
	if contained < minConsolidationBars {
		return model.DarvasBox{Status: model.BoxNone, Reason: "insufficient consolidation"}
	}

	bottom := after[0].Low
	for _, b := range after[1:] {
		if b.Low < bottom {
			bottom = b.Low
		}
	}

	box := model.DarvasBox{Top: round2(top), Bottom: round2(bottom), Status: model.BoxWithin}
	lastClose := s.Last().Close
	switch {
	case lastClose > top:
		box.Status = model.BoxBreakout
	case lastClose < bottom:
		box.Status = model.BoxBreakdown
	}
	return box
}
