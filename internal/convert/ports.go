package convert

import (
	"context"

	"github.com/Vovarama1992/pdf2zip/internal/pdf"
)

// Request is the invocation envelope. Body is the payload as received,
// with no transport-level interpretation applied.
type Request struct {
	Body []byte
}

// Response is the invocation result envelope.
type Response struct {
	StatusCode      int
	Headers         map[string]string
	Body            string
	IsBase64Encoded bool
}

type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string) ([]pdf.Page, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destPath string) error
}

// Notifier delivers failure reports to an admin channel. Best effort.
type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}
