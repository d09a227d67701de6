package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/model"
)

type webhookCapture struct {
	payloads []map[string]json.RawMessage
}

func captureServer(t *testing.T, c *webhookCapture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		c.payloads = append(c.payloads, payload)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestNotify_UnconfiguredIsNoop(t *testing.T) {
	d := NewDiscordNotifier("", "")
	assert.NoError(t, d.Notify(context.Background(), []*model.ScanResult{{Ticker: "AAPL"}}))
}

func TestNotify_NoActionableSignals(t *testing.T) {
	var c webhookCapture
	server := captureServer(t, &c)
	defer server.Close()

	d := NewDiscordNotifier(server.URL, "")
	results := []*model.ScanResult{
		{Ticker: "A", WatchlistTier: "Not Yet"},
		{Ticker: "B", WatchlistTier: "Not Yet"},
	}
	require.NoError(t, d.Notify(context.Background(), results))
	require.Len(t, c.payloads, 1)
	assert.Contains(t, string(c.payloads[0]["content"]), "No actionable signals")
}

func TestNotify_SendsSummaryThenEmbeds(t *testing.T) {
	var c webhookCapture
	server := captureServer(t, &c)
	defer server.Close()

	d := NewDiscordNotifier(server.URL, "")
	results := []*model.ScanResult{
		{Ticker: "AAPL", WatchlistTier: "Ready Now", ConfidenceScore: 85,
			DarvasBox: "box 95.00-120.00: breakout"},
		{Ticker: "MSFT", WatchlistTier: "Setting Up", ConfidenceScore: 60},
		{Ticker: "XYZ", WatchlistTier: "Not Yet"},
	}
	require.NoError(t, d.Notify(context.Background(), results))
	require.Len(t, c.payloads, 3, "summary plus one embed per actionable result")

	assert.Contains(t, string(c.payloads[0]["content"]), "**1** Ready Now and **1** Setting Up")

	var embeds []embed
	require.NoError(t, json.Unmarshal(c.payloads[1]["embeds"], &embeds))
	require.Len(t, embeds, 1)
	assert.Equal(t, "Ready Now: AAPL", embeds[0].Title)
	assert.Equal(t, 0x00FF00, embeds[0].Color)

	require.NoError(t, json.Unmarshal(c.payloads[2]["embeds"], &embeds))
	assert.Equal(t, "Setting Up: MSFT", embeds[0].Title)
	assert.Equal(t, 0xFFFF00, embeds[0].Color)
}

func TestBuildEmbed_Fields(t *testing.T) {
	e := buildEmbed(&model.ScanResult{
		Ticker:            "AAPL",
		WatchlistTier:     "Ready Now",
		ConfidenceScore:   85,
		MarketStructure:   "Uptrend",
		Patterns:          []string{"Darvas breakout", "VCP"},
		Sector:            "Technology (+3.20% 1M)",
		EarningsProximity: "Earnings in 14 days (2026-09-10)",
		TechnicalTriggers: map[string]string{
			"entry_zone": "120-122", "stop_loss": "94",
		},
	})

	fields := map[string]string{}
	for _, f := range e.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "85/100", fields["Confidence"])
	assert.Equal(t, "Uptrend", fields["Structure"])
	assert.Equal(t, "Technology (+3.20% 1M)", fields["Sector"])
	assert.Equal(t, "Earnings in 14 days (2026-09-10)", fields["Earnings"])
	assert.Equal(t, "N/A", fields["News Sentiment"])
	assert.Equal(t, "Darvas breakout, VCP", fields["Patterns"])
	assert.Equal(t, "120-122", fields["Entry Zone"])
	assert.Equal(t, "94", fields["Stop Loss"])
	assert.Equal(t, "N/A", fields["Target"], "missing trigger falls back to N/A")
	assert.Equal(t, "N/A", fields["Reasoning"])
}

func TestBuildEmbed_TruncatesReasoning(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	e := buildEmbed(&model.ScanResult{Ticker: "AAPL", Reasoning: string(long)})
	for _, f := range e.Fields {
		if f.Name == "Reasoning" {
			assert.Len(t, f.Value, 1024)
		}
	}
}
