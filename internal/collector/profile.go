package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockScan/internal/model"
)

const newsHeadlines = 5

// quoteSummary is the response envelope of the v10 quoteSummary endpoint,
// reduced to the modules the profile needs. Numeric fields arrive wrapped in
// {raw, fmt} objects.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			MajorHoldersBreakdown struct {
				InstitutionsPercentHeld struct {
					Raw float64 `json:"raw"`
				} `json:"institutionsPercentHeld"`
			} `json:"majorHoldersBreakdown"`
			CalendarEvents struct {
				Earnings struct {
					EarningsDate []struct {
						Fmt string `json:"fmt"`
					} `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type newsSearch struct {
	News []struct {
		Title string `json:"title"`
	} `json:"news"`
}

// FetchProfile gathers the per-ticker enrichment: sector/industry and
// ownership from quoteSummary, plus recent headlines from the search
// endpoint. Missing modules leave their fields empty; only transport and
// decode failures are errors.
func (f *YahooFetcher) FetchProfile(symbol string) (*model.StockProfile, error) {
	profile := &model.StockProfile{}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,majorHoldersBreakdown,calendarEvents",
		f.BaseURL, url.PathEscape(symbol))
	var qs quoteSummary
	if err := f.getJSON(u, &qs); err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}
	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("profile %s: %s", symbol, qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) > 0 {
		r := qs.QuoteSummary.Result[0]
		profile.Sector = r.AssetProfile.Sector
		profile.Industry = r.AssetProfile.Industry
		profile.InstitutionalPct = r.MajorHoldersBreakdown.InstitutionsPercentHeld.Raw * 100
		if dates := r.CalendarEvents.Earnings.EarningsDate; len(dates) > 0 {
			profile.EarningsDate = dates[0].Fmt
		}
	}

	// Headlines are nice-to-have; a failed lookup leaves the list empty.
	nu := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		f.BaseURL, url.QueryEscape(symbol), newsHeadlines)
	var ns newsSearch
	if err := f.getJSON(nu, &ns); err == nil {
		for _, n := range ns.News {
			if n.Title != "" {
				profile.News = append(profile.News, n.Title)
			}
		}
	}

	return profile, nil
}

func (f *YahooFetcher) getJSON(u string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// EarningsProximity renders how close the next earnings report is relative to
// now. An empty or unparseable date yields the empty string.
func EarningsProximity(earningsDate string, now time.Time) string {
	if earningsDate == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", earningsDate)
	if err != nil {
		return ""
	}
	days := int(d.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("Last earnings %d days ago (%s)", -days, earningsDate)
	case days == 0:
		return fmt.Sprintf("Earnings today (%s)", earningsDate)
	default:
		return fmt.Sprintf("Earnings in %d days (%s)", days, earningsDate)
	}
}
