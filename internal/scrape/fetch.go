
// Package scrape turns one source's semi-structured HTML into a
// categorized rate catalog: fetch, row discovery, blacklist filtering,
// classification and price extraction, parameterized per source.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	fetchTimeout = 12 * time.Second
	maxBodyBytes = 4 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) MiniRates/1.0"
)

// Fetcher retrieves and parses source pages. All sources share one client
// so keep-alive connections are reused across a refresh cycle.
type Fetcher struct {
	client *http.Client
	log    *logrus.Logger
}

func NewFetcher(log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// Fetch GETs the page with a cache-busting query parameter and returns the
// parsed document, or nil when anything goes wrong. Fetch failures are a
// normal condition here (flaky sources), so they are logged and absorbed.
func (f *Fetcher) Fetch(ctx context.Context, baseURL string) *goquery.Document {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	u := fmt.Sprintf("%s%s_ts=%d", baseURL, sep, time.Now().Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		f.log.Warnf("fetch %s: %v", baseURL, err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fa-IR,fa;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warnf("fetch %s: %v", baseURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warnf("fetch %s: status %d", baseURL, resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.log.Warnf("parse %s: %v", baseURL, err)
		return nil
	}
	return doc
}
