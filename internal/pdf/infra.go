package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// render settings are fixed, not user-configurable
	renderDPI     = 150
	renderWorkers = 2
)

var pageFileRe = regexp.MustCompile(`^page-0*([0-9]+)\.jpg$`)

type PopplerRasterizer struct {
	run CommandRunner
}

func NewPopplerRasterizer() *PopplerRasterizer {
	return &PopplerRasterizer{run: execRunner{}}
}

// NewPopplerRasterizerWithRunner is used by tests to swap the exec layer.
func NewPopplerRasterizerWithRunner(run CommandRunner) *PopplerRasterizer {
	return &PopplerRasterizer{run: run}
}

func (r *PopplerRasterizer) Rasterize(ctx context.Context, pdfPath string) ([]Page, error) {
	for _, bin := range []string{"pdfinfo", "pdftoppm"} {
		if _, err := r.run.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%s not found in PATH: %w", bin, err)
		}
	}

	total, err := r.pageCount(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	outDir, err := os.MkdirTemp("", "pdfrender-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outDir)

	outBase := filepath.Join(outDir, "page")

	// pdftoppm renders whole page ranges; two concurrent range renders
	// mirror the service's parallelism hint. Page order is recovered from
	// filenames afterwards, never from completion order.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers)

	for _, pr := range splitRanges(total, renderWorkers) {
		g.Go(func() error {
			_, err := r.run.Run(gctx, "pdftoppm",
				"-f", strconv.Itoa(pr.first),
				"-l", strconv.Itoa(pr.last),
				"-r", strconv.Itoa(renderDPI),
				"-jpeg",
				pdfPath,
				outBase,
			)
			if err != nil {
				return fmt.Errorf("pdftoppm pages %d-%d: %w", pr.first, pr.last, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return collectPages(outDir, total)
}

func (r *PopplerRasterizer) pageCount(ctx context.Context, pdfPath string) (int, error) {
	out, err := r.run.Run(ctx, "pdfinfo", pdfPath)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w", err)
	}
	return parsePdfInfoPages(out)
}

func parsePdfInfoPages(out []byte) (int, error) {
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if err != nil {
			return 0, fmt.Errorf("bad pdfinfo Pages line %q", line)
		}
		if n < 1 {
			return 0, fmt.Errorf("document has no pages")
		}
		return n, nil
	}
	return 0, fmt.Errorf("no Pages line in pdfinfo output")
}

type pageRange struct {
	first, last int
}

// splitRanges cuts 1..total into at most workers contiguous chunks.
func splitRanges(total, workers int) []pageRange {
	if workers > total {
		workers = total
	}
	size := (total + workers - 1) / workers

	var ranges []pageRange
	for first := 1; first <= total; first += size {
		last := first + size - 1
		if last > total {
			last = total
		}
		ranges = append(ranges, pageRange{first: first, last: last})
	}
	return ranges
}

// collectPages reads rendered page files back in page-number order.
// pdftoppm zero-pads numbers in filenames, so the number is parsed out
// rather than guessed from padding width.
func collectPages(dir string, want int) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pages []Page
	for _, e := range entries {
		m := pageFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Number: n, Bytes: b})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })

	if len(pages) != want {
		return nil, fmt.Errorf("rendered %d pages, expected %d", len(pages), want)
	}
	for i, p := range pages {
		if p.Number != i+1 {
			return nil, fmt.Errorf("page numbering not contiguous: got page %d at position %d", p.Number, i+1)
		}
	}

	return pages, nil
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %v: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
