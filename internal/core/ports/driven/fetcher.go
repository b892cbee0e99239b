package driven

import "context"

// PageFetcher retrieves the raw HTML of a web page.
//
// Implementations enforce the outbound timeout and revalidate redirect
// targets; URL validation of the initial request is the ingestion
// pipeline's responsibility and happens before any network work.
type PageFetcher interface {
	// FetchPage performs an HTTP GET and returns the response body.
	// Non-2xx responses and transport errors fail with
	// domain.ErrSourceUnavailable.
	FetchPage(ctx context.Context, rawURL string) (string, error)
}
