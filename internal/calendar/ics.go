package calendar

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// FetchTimeout bounds the single feed request.
const FetchTimeout = 30 * time.Second

// Fetch retrieves raw ICS text from an http(s) URL, a file:// URL, or a bare
// local path.
func Fetch(source string) (string, error) {
	if strings.HasPrefix(source, "file://") {
		parsed, err := url.Parse(source)
		if err != nil {
			return "", fmt.Errorf("parsing file URL: %w", err)
		}
		data, err := os.ReadFile(parsed.Path)
		if err != nil {
			return "", fmt.Errorf("reading feed file: %w", err)
		}
		return string(data), nil
	}

	if !strings.Contains(source, "://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("reading feed file: %w", err)
		}
		return string(data), nil
	}

	client := &http.Client{Timeout: FetchTimeout}
	resp, err := client.Get(source)
	if err != nil {
		return "", fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading feed body: %w", err)
	}
	return string(body), nil
}
