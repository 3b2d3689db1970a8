package scrape

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"suumosync/internal/config"
	"suumosync/internal/logger"
)

// Fetcher downloads a listing page and parses it once into a document.
// One GET per run, no retries; the timeout comes from configuration.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
}

// NewFetcher builds a Fetcher from the scraper configuration.
func NewFetcher(cfg config.ScraperConfig, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

// Fetch GETs the page with the configured browser-like User-Agent and
// returns the parsed document. Any non-2xx status is a fetch error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	f.log.Debug("Listing page fetched", map[string]any{"url": url})
	return doc, nil
}
