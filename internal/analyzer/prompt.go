package analyzer

import (
	"encoding/json"
	"fmt"

	"StockScan/internal/model"
)

const promptTemplate = `Role: You are a Senior Technical Analyst specializing in price action and volume spread analysis (VSA). Your goal is to identify high-probability bullish entries based on the computed technical evidence below (SMA 50/150 profile, weekly trend, Darvas box, volatility compression, sector relative strength).

Technical evidence for %s:
%s

Analysis Framework:
Strictly evaluate the evidence for the following criteria:

Structural Shifts:
- Reversals: a higher high after a prolonged downtrend, price recovering the slow SMA and holding it as support.
- SMA interaction: prioritize setups where price sits above the SMA 150 with the SMA 50 above it (bullish alignment).

Momentum & Breakouts:
- Volatility contraction: a tight or moderate consolidation reading suggests a coiled range.
- Darvas box status: "breakout" above the box top is confirmation; "within" near the top is a setup.

Volume Integrity:
- Compare the average weekly volume to the trend direction; rising price on drying volume is suspect.

Context & Catalysts:
- Sector relative strength: favor stocks whose sector ranks near the top of the heatmap.
- Earnings proximity: a report within the next two weeks raises event risk; note it in the reasoning.
- Headlines: classify the news flow as Bullish/Bearish/Neutral in news_sentiment; ignore stale items.

Output Constraints:
- Selectivity: set bullish_signal to true only if price is above the SMA 150 OR the box shows a confirmed breakout.
- watchlist_tier: "Ready Now" for confirmed breakouts, "Setting Up" for tight consolidations near resistance, "Not Yet" otherwise.
- Risk/Reward: stop_loss below the box bottom or the SMA 150.
- Tone: objective, data-driven, skeptical.

Respond in this exact JSON format:
{
  "bullish_signal": boolean,
  "confidence_score": "0-100",
  "watchlist_tier": "Ready Now/Setting Up/Not Yet",
  "market_structure": "Uptrend/Downtrend/Consolidation",
  "patterns_detected": ["List specific patterns"],
  "technical_triggers": {
    "entry_zone": "Price range",
    "stop_loss": "Specific price",
    "target_1": "Next resistance level"
  },
  "volume_analysis": "Describe the volume relationship to price action",
  "news_sentiment": "Bullish/Bearish/Neutral with a short justification",
  "reasoning": "A concise professional synthesis of the evidence."
}`

// BuildPrompt renders the analysis prompt for one symbol. The evidence block
// is the StockContext serialized as indented JSON, so the model sees exactly
// the fields the engine computed.
func BuildPrompt(sctx *model.StockContext) string {
	evidence, err := json.MarshalIndent(sctx, "", "  ")
	if err != nil {
		evidence = []byte("{}")
	}
	return fmt.Sprintf(promptTemplate, sctx.Ticker, evidence)
}
