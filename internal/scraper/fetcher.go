package scraper

import (
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each detail-page request.
	DefaultTimeout = 15 * time.Second

	// UserAgent is a desktop browser identity; some event sites 403 plain
	// library user agents.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// BypassHeaderName is the site-provided header for its bot protection.
	BypassHeaderName = "x-wdsoit-bot-bypass"
)

// Fetcher performs single-attempt GETs against event detail pages.
type Fetcher struct {
	client      *http.Client
	bypassValue string
}

// NewFetcher creates a Fetcher. A non-positive timeout selects the default;
// an empty bypassValue omits the bypass header.
func NewFetcher(timeout time.Duration, bypassValue string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		bypassValue: bypassValue,
	}
}

// Fetch issues one GET and returns the page body. Any transport failure,
// timeout, or non-2xx status is a miss (ok=false); nothing propagates as an
// error past this boundary, and there are no retries.
func (f *Fetcher) Fetch(url string) (string, bool) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if f.bypassValue != "" {
		req.Header.Set(BypassHeaderName, f.bypassValue)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}
	return string(body), true
}
