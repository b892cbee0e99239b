package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Source input limits. These bound embedding cost and chunk count for a
// single ingestion run.
const (
	// MaxSourceTextLen is the maximum number of bytes of normalised text
	// kept from a source. Longer documents are truncated.
	MaxSourceTextLen = 50000

	// MaxPDFUploadBytes is the maximum accepted PDF payload size
	// (1 MiB binary, roughly 1.37 MB as base64 on the wire).
	MaxPDFUploadBytes = 1 << 20
)

// privateHostPrefixes are hostname prefixes rejected by the scrape guard.
// This is a coarse private-network filter, not a complete SSRF defence:
// it misses IPv6 loopback, alternative IP encodings, and DNS rebinding.
// The fetcher additionally revalidates every redirect hop.
var privateHostPrefixes = []string{"192.168.", "10.", "172."}

// ValidateSourceURL checks that a raw URL is acceptable for scraping.
// It must be an absolute http or https URL and must not point at
// localhost or an obviously private network range.
func ValidateSourceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: url is empty", ErrInvalidInput)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: not a valid url", ErrInvalidInput)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q is not allowed, use http or https", ErrInvalidInput, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: url has no host", ErrInvalidInput)
	}

	if host == "localhost" || host == "127.0.0.1" {
		return fmt.Errorf("%w: local addresses are not allowed", ErrInvalidInput)
	}
	for _, prefix := range privateHostPrefixes {
		if strings.HasPrefix(host, prefix) {
			return fmt.Errorf("%w: private network addresses are not allowed", ErrInvalidInput)
		}
	}

	return nil
}
