package pdf

import "context"

// Page is one rendered PDF page, already JPEG-encoded.
type Page struct {
	Number int
	Bytes  []byte
}

type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string) ([]Page, error)
}

// CommandRunner abstracts the poppler binaries so tests can run without them.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(file string) (string, error)
}
