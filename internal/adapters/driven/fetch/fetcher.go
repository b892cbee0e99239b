// Package fetch provides the HTTP page fetcher used by URL ingestion.
//
// The fetcher enforces a hard request timeout, sends an identifying
// User-Agent, requires a 2xx response, and revalidates the target of
// every redirect hop against the same scheme and private-host guard as
// the initial URL.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/feynlab/contextcore/internal/core/domain"
	"github.com/feynlab/contextcore/internal/core/ports/driven"
	"github.com/feynlab/contextcore/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	// DefaultTimeout aborts the whole fetch, redirects included.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps the response body read.
	DefaultMaxBodyBytes = 10 << 20

	// maxRedirects bounds redirect chains.
	maxRedirects = 10

	userAgent = "contextcore/1.0 (study material scraper)"
)

// Fetcher retrieves web pages over HTTP.
type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the total request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithMaxBodyBytes sets the response body size cap.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// New creates a page fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			// Redirects are followed, but every hop must pass the same
			// guard as the original URL so a public page cannot bounce
			// the fetcher into a private network.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return domain.ValidateSourceURL(req.URL.String())
			},
		},
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage performs an HTTP GET and returns the response body.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	logger.Debug("GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: server returned status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrSourceUnavailable, err)
	}

	logger.Debug("Fetched %d bytes (status %d)", len(body), resp.StatusCode)
	return string(body), nil
}
