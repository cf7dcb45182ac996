package convert

import "errors"

// Failure classes distinguished internally. The response boundary keeps
// them collapsed: missing input is the only client error, everything
// else maps to the same 500 shape.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrDecodeFailed = errors.New("decode failed")
	ErrRenderFailed = errors.New("render failed")
)
