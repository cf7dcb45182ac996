package pdf

import "context"

type PDFService struct {
	raster Rasterizer
}

func NewPDFService(r Rasterizer) *PDFService {
	return &PDFService{raster: r}
}

func (s *PDFService) Rasterize(ctx context.Context, pdfPath string) ([]Page, error) {
	return s.raster.Rasterize(ctx, pdfPath)
}
