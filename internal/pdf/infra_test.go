package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner stands in for the poppler binaries. pdfinfo reports a fixed
// page count; pdftoppm writes fake jpegs for the requested range.
type fakeRunner struct {
	pages       int
	missing     string // binary reported absent by LookPath
	toppmErr    error
	skipPage    int // page whose output file is silently not written
	zeroPadding int // filename number width, 0 means no padding

	mu    sync.Mutex
	calls [][]string
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if file == f.missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	switch name {
	case "pdfinfo":
		return []byte(fmt.Sprintf("Title:          test\nPages:          %d\nEncrypted:      no\n", f.pages)), nil
	case "pdftoppm":
		if f.toppmErr != nil {
			return nil, f.toppmErr
		}
		return nil, f.writeRange(args)
	default:
		return nil, fmt.Errorf("unexpected command %s", name)
	}
}

func (f *fakeRunner) writeRange(args []string) error {
	var first, last int
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-f":
			first, _ = strconv.Atoi(args[i+1])
		case "-l":
			last, _ = strconv.Atoi(args[i+1])
		}
	}
	outBase := args[len(args)-1]

	for n := first; n <= last; n++ {
		if n == f.skipPage {
			continue
		}
		name := fmt.Sprintf("%s-%d.jpg", outBase, n)
		if f.zeroPadding > 0 {
			name = fmt.Sprintf("%s-%0*d.jpg", outBase, f.zeroPadding, n)
		}
		if err := os.WriteFile(name, []byte(fmt.Sprintf("jpeg-%d", n)), 0644); err != nil {
			return err
		}
	}
	return nil
}

func TestRasterizeOrdersPages(t *testing.T) {
	runner := &fakeRunner{pages: 5}
	r := NewPopplerRasterizerWithRunner(runner)

	pages, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 5)

	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, []byte(fmt.Sprintf("jpeg-%d", i+1)), p.Bytes)
	}
}

func TestRasterizeHandlesZeroPaddedFilenames(t *testing.T) {
	runner := &fakeRunner{pages: 12, zeroPadding: 2}
	r := NewPopplerRasterizerWithRunner(runner)

	pages, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 12)
	assert.Equal(t, 10, pages[9].Number)
}

func TestRasterizeSplitsWorkAcrossRanges(t *testing.T) {
	runner := &fakeRunner{pages: 5}
	r := NewPopplerRasterizerWithRunner(runner)

	_, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.NoError(t, err)

	var toppmCalls int
	for _, call := range runner.calls {
		if call[0] == "pdftoppm" {
			toppmCalls++
			assert.Contains(t, call, "-jpeg")
			assert.Contains(t, call, "150")
		}
	}
	assert.Equal(t, 2, toppmCalls, "five pages should render as two ranges")
}

func TestRasterizeSinglePageUsesOneRange(t *testing.T) {
	runner := &fakeRunner{pages: 1}
	r := NewPopplerRasterizerWithRunner(runner)

	pages, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 1)

	var toppmCalls int
	for _, call := range runner.calls {
		if call[0] == "pdftoppm" {
			toppmCalls++
		}
	}
	assert.Equal(t, 1, toppmCalls)
}

func TestRasterizeMissingBinary(t *testing.T) {
	for _, bin := range []string{"pdfinfo", "pdftoppm"} {
		t.Run(bin, func(t *testing.T) {
			runner := &fakeRunner{pages: 1, missing: bin}
			r := NewPopplerRasterizerWithRunner(runner)

			_, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
			require.Error(t, err)
			assert.Contains(t, err.Error(), bin)
		})
	}
}

func TestRasterizeRenderError(t *testing.T) {
	runner := &fakeRunner{pages: 3, toppmErr: errors.New("Syntax Error: corrupt stream")}
	r := NewPopplerRasterizerWithRunner(runner)

	_, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
}

func TestRasterizeDetectsMissingPage(t *testing.T) {
	runner := &fakeRunner{pages: 4, skipPage: 2}
	r := NewPopplerRasterizerWithRunner(runner)

	_, err := r.Rasterize(context.Background(), "/tmp/input.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4")
}

func TestParsePdfInfoPages(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "normal output", out: "Title: x\nPages:          7\n", want: 7},
		{name: "no pages line", out: "Title: x\n", wantErr: true},
		{name: "garbage count", out: "Pages: many\n", wantErr: true},
		{name: "zero pages", out: "Pages: 0\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePdfInfoPages([]byte(tt.out))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRanges(t *testing.T) {
	tests := []struct {
		total, workers int
		want           []pageRange
	}{
		{total: 1, workers: 2, want: []pageRange{{1, 1}}},
		{total: 2, workers: 2, want: []pageRange{{1, 1}, {2, 2}}},
		{total: 5, workers: 2, want: []pageRange{{1, 3}, {4, 5}}},
		{total: 6, workers: 2, want: []pageRange{{1, 3}, {4, 6}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_pages_%d_workers", tt.total, tt.workers), func(t *testing.T) {
			assert.Equal(t, tt.want, splitRanges(tt.total, tt.workers))
		})
	}
}

func TestCollectPagesIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page-1.jpg"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("b"), 0644))

	pages, err := collectPages(dir, 1)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
}
