package convert

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zip"

	"github.com/Vovarama1992/pdf2zip/internal/pdf"
)

// buildArchive packs page images into a deflate ZIP. Entries are written
// strictly in page order as page_1.jpg..page_N.jpg, so the archive
// directory order always matches the document.
func buildArchive(pages []pdf.Page) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, p := range pages {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   fmt.Sprintf("page_%d.jpg", p.Number),
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("zip entry page_%d.jpg: %w", p.Number, err)
		}
		if _, err := w.Write(p.Bytes); err != nil {
			zw.Close()
			return nil, fmt.Errorf("zip write page_%d.jpg: %w", p.Number, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
