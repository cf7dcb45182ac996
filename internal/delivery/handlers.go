package delivery

import (
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/pdf2zip/internal/convert"
	"github.com/Vovarama1992/pdf2zip/internal/ports"
)

type ConvertHandler struct {
	svc     ports.ConvertService
	log     *logger.ZapLogger
	maxBody int64
}

func NewConvertHandler(svc ports.ConvertService, log *logger.ZapLogger, maxBody int64) *ConvertHandler {
	return &ConvertHandler{
		svc:     svc,
		log:     log,
		maxBody: maxBody,
	}
}

// Convert maps the HTTP request onto the invocation envelope and writes
// the resulting envelope back verbatim: status, headers and body come
// from the service, the HTTP layer adds nothing of its own.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "failed to read body", Error: err})
		http.Error(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := h.svc.Handle(r.Context(), convert.Request{Body: body})

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write([]byte(resp.Body))
}
