package fetch

import (
	"context"
	"fmt"
	"net/url"
)

// Service routes a source URL to the fetcher for its scheme.
type Service struct {
	http Fetcher
	s3   Fetcher
}

func NewService(httpFetcher *HTTPFetcher, s3Fetcher *S3Fetcher) *Service {
	s := &Service{http: httpFetcher}
	if s3Fetcher != nil {
		s.s3 = s3Fetcher
	}
	return s
}

func (s *Service) Fetch(ctx context.Context, rawURL, destPath string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("bad url %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return s.http.Fetch(ctx, rawURL, destPath)
	case "s3":
		if s.s3 == nil {
			return fmt.Errorf("s3 urls not supported: no S3 credentials configured")
		}
		return s.s3.Fetch(ctx, rawURL, destPath)
	default:
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
}
