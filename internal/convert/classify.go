package convert

import (
	"bytes"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

type Kind int

const (
	KindRawBytes Kind = iota
	KindBase64Text
	KindURLRequest
)

// Input is the classified payload. URL is set only for KindURLRequest.
type Input struct {
	Kind Kind
	URL  string
}

var pdfMagic = []byte("%PDF-")

// Classify decides how a payload is to be interpreted. Pure function, no
// IO: fetching and decoding happen later, so their failures stay separate
// from classification.
//
// Order matters: a JSON object naming pdf_url wins, then binary payloads
// are taken as raw PDF bytes, and any other text is assumed base64.
func Classify(body []byte) Input {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			PDFURL string `json:"pdf_url"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.PDFURL != "" {
			return Input{Kind: KindURLRequest, URL: probe.PDFURL}
		}
	}

	if isBinary(body) {
		return Input{Kind: KindRawBytes}
	}

	return Input{Kind: KindBase64Text}
}

// isBinary reports whether the payload is a byte blob rather than text.
// A PDF magic prefix, a NUL byte or broken UTF-8 all mean binary.
func isBinary(body []byte) bool {
	if bytes.HasPrefix(body, pdfMagic) {
		return true
	}
	if bytes.IndexByte(body, 0) >= 0 {
		return true
	}
	return !utf8.Valid(body)
}
