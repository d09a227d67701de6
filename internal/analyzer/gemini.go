// Package analyzer sends the computed technical evidence for each symbol to
// the Gemini API and parses the structured verdict. It is a consumer of the
// signal engine's output; nothing here feeds back into indicator computation.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"StockScan/internal/model"
)

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	apiKey    string
	url       string
	http      *http.Client
	batchSize int
	pause     time.Duration // rate-limit pause between batches
}

// NewClient builds an analyzer client for the given model name.
func NewClient(apiKey, modelName, proxyURL string, batchSize int) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Client{
		apiKey: apiKey,
		url: fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
			modelName),
		http:      &http.Client{Timeout: 120 * time.Second, Transport: transport},
		batchSize: batchSize,
		pause:     5 * time.Second,
	}
}

// geminiRequest is the request payload for generateContent.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"response_mime_type"`
}

// geminiResponse covers the candidates[0].content.parts[0].text path.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// verdict is the JSON shape the prompt instructs the model to answer with.
type verdict struct {
	BullishSignal     bool              `json:"bullish_signal"`
	ConfidenceScore   json.Number       `json:"confidence_score"`
	WatchlistTier     string            `json:"watchlist_tier"`
	MarketStructure   string            `json:"market_structure"`
	PatternsDetected  []string          `json:"patterns_detected"`
	TechnicalTriggers map[string]string `json:"technical_triggers"`
	VolumeAnalysis    string            `json:"volume_analysis"`
	NewsSentiment     string            `json:"news_sentiment"`
	Reasoning         string            `json:"reasoning"`
}

// AnalyzeStock sends one symbol's evidence and parses the verdict.
func (c *Client) AnalyzeStock(ctx context.Context, sctx *model.StockContext) (*model.ScanResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("analyzer not configured: missing API key")
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: BuildPrompt(sctx)}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url+"?key="+url.QueryEscape(c.apiKey), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	text := gr.Candidates[0].Content.Parts[0].Text

	var v verdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse verdict JSON: %w (raw: %.200s)", err, text)
	}

	conf, _ := v.ConfidenceScore.Int64()
	return &model.ScanResult{
		Ticker:            sctx.Ticker,
		BullishSignal:     v.BullishSignal,
		ConfidenceScore:   int(conf),
		WatchlistTier:     v.WatchlistTier,
		MarketStructure:   v.MarketStructure,
		Patterns:          v.PatternsDetected,
		TechnicalTriggers: v.TechnicalTriggers,
		VolumeAnalysis:    v.VolumeAnalysis,
		NewsSentiment:     v.NewsSentiment,
		Reasoning:         v.Reasoning,
		Sector:            sctx.SectorPerformance,
		EarningsProximity: sctx.EarningsProximity,
		DarvasBox:         sctx.Box.String(),
		Consolidation:     sctx.Consolidation.Summary,
	}, nil
}

// AnalyzeBatch analyzes all contexts, pausing between batches to stay under
// the API rate limit. A failed symbol yields a placeholder result; it never
// aborts the rest of the batch.
func (c *Client) AnalyzeBatch(ctx context.Context, contexts []*model.StockContext) []*model.ScanResult {
	results := make([]*model.ScanResult, 0, len(contexts))
	for i, sctx := range contexts {
		if i > 0 && i%c.batchSize == 0 {
			log.Info().Msg("pausing between analysis batches")
			select {
			case <-ctx.Done():
				return results
			case <-time.After(c.pause):
			}
		}
		log.Info().Str("ticker", sctx.Ticker).Msg("analyzing")
		res, err := c.AnalyzeStock(ctx, sctx)
		if err != nil {
			log.Warn().Str("ticker", sctx.Ticker).Err(err).Msg("analysis failed")
			res = &model.ScanResult{
				Ticker:            sctx.Ticker,
				WatchlistTier:     "Not Yet",
				Reasoning:         fmt.Sprintf("Error: %v", err),
				Sector:            sctx.SectorPerformance,
				EarningsProximity: sctx.EarningsProximity,
				DarvasBox:         sctx.Box.String(),
				Consolidation:     sctx.Consolidation.Summary,
			}
		}
		results = append(results, res)
	}
	return results
}
