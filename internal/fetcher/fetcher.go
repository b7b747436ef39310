// Package fetcher downloads dataset documents over HTTP or from local files.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for retrieving a remote or local document.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// closes it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
