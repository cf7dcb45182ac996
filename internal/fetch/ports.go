package fetch

import "context"

// Fetcher downloads a source document straight to destPath, never
// buffering the whole body in memory.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destPath string) error
}
