// Package notifier delivers scan outcomes to Discord via webhook. Delivery is
// best-effort I/O; a failed send never affects the scan results themselves.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockScan/internal/model"
)

// Notifier pushes finished scan results to an external channel.
type Notifier interface {
	Notify(ctx context.Context, results []*model.ScanResult) error
}

// DiscordNotifier sends messages and embeds through a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Client     *http.Client
}

// NewDiscordNotifier creates a notifier with optional proxy support.
func NewDiscordNotifier(webhookURL, proxyURL string) *DiscordNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// embed is a Discord rich embed.
type embed struct {
	Title  string       `json:"title"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Notify sends the actionable results (Ready Now / Setting Up) as embeds,
// prefixed by a summary line. No actionable signals still produce a short
// completion message.
func (d *DiscordNotifier) Notify(ctx context.Context, results []*model.ScanResult) error {
	if d.WebhookURL == "" {
		log.Info().Msg("discord webhook not configured, skipping notifications")
		return nil
	}

	var actionable []*model.ScanResult
	ready, settingUp := 0, 0
	for _, r := range results {
		switch r.WatchlistTier {
		case "Ready Now":
			ready++
			actionable = append(actionable, r)
		case "Setting Up":
			settingUp++
			actionable = append(actionable, r)
		}
	}

	if len(actionable) == 0 {
		return d.post(ctx, map[string]interface{}{
			"content": "Stock scan completed. No actionable signals detected.",
		})
	}

	summary := fmt.Sprintf("Stock scan found **%d** Ready Now and **%d** Setting Up signal(s):",
		ready, settingUp)
	if err := d.post(ctx, map[string]interface{}{"content": summary}); err != nil {
		return err
	}

	for _, r := range actionable {
		if err := d.post(ctx, map[string]interface{}{"embeds": []embed{buildEmbed(r)}}); err != nil {
			log.Warn().Str("ticker", r.Ticker).Err(err).Msg("discord send failed")
			continue
		}
		log.Info().Str("ticker", r.Ticker).Msg("sent to discord")
	}
	return nil
}

func buildEmbed(r *model.ScanResult) embed {
	color := 0xFFFF00 // Setting Up: yellow
	if r.WatchlistTier == "Ready Now" {
		color = 0x00FF00
	}
	entry, stop, target := "N/A", "N/A", "N/A"
	if r.TechnicalTriggers != nil {
		if v := r.TechnicalTriggers["entry_zone"]; v != "" {
			entry = v
		}
		if v := r.TechnicalTriggers["stop_loss"]; v != "" {
			stop = v
		}
		if v := r.TechnicalTriggers["target_1"]; v != "" {
			target = v
		}
	}
	patterns := strings.Join(r.Patterns, ", ")
	if patterns == "" {
		patterns = "None"
	}
	reasoning := r.Reasoning
	if len(reasoning) > 1024 {
		reasoning = reasoning[:1024]
	}
	if reasoning == "" {
		reasoning = "N/A"
	}
	return embed{
		Title: fmt.Sprintf("%s: %s", r.WatchlistTier, r.Ticker),
		Color: color,
		Fields: []embedField{
			{Name: "Confidence", Value: fmt.Sprintf("%d/100", r.ConfidenceScore), Inline: true},
			{Name: "Structure", Value: orNA(r.MarketStructure), Inline: true},
			{Name: "Sector", Value: orNA(r.Sector), Inline: false},
			{Name: "Earnings", Value: orNA(r.EarningsProximity), Inline: true},
			{Name: "News Sentiment", Value: orNA(r.NewsSentiment), Inline: true},
			{Name: "Darvas Box", Value: orNA(r.DarvasBox), Inline: false},
			{Name: "Consolidation", Value: orNA(r.Consolidation), Inline: false},
			{Name: "Patterns", Value: patterns, Inline: false},
			{Name: "Entry Zone", Value: entry, Inline: true},
			{Name: "Stop Loss", Value: stop, Inline: true},
			{Name: "Target", Value: target, Inline: true},
			{Name: "Volume", Value: orNA(r.VolumeAnalysis), Inline: false},
			{Name: "Reasoning", Value: reasoning, Inline: false},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// post delivers one webhook payload with exponential backoff retry.
func (d *DiscordNotifier) post(ctx context.Context, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	const maxRetries = 3
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.Client.Do(req)
		if err == nil {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
				return nil
			}
			err = fmt.Errorf("discord API error: status %d, body: %s", resp.StatusCode, string(respBody))
		}
		lastErr = err
		backoff := time.Duration(1<<uint(i)) * time.Second
		log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).Msg("discord send failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
