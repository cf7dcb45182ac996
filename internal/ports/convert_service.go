package ports

import (
	"context"

	"github.com/Vovarama1992/pdf2zip/internal/convert"
)

type ConvertService interface {
	Handle(ctx context.Context, req convert.Request) convert.Response
}
