package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/document"
)

// DocumentHandler serves the reference climbing guide.
type DocumentHandler struct {
	loader *document.Loader
	logger zerolog.Logger
}

// NewDocumentHandler creates a new DocumentHandler. A nil loader reports
// the document as unavailable.
func NewDocumentHandler(loader *document.Loader, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{loader: loader, logger: logger}
}

// Status handles GET /v1/documents/reference.
func (h *DocumentHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, r, h.logger, document.ErrNoDocumentSource)
		return
	}
	response.JSON(w, r, http.StatusOK, h.loader.Status())
}

// Page handles GET /v1/documents/reference/pages/{page}.
func (h *DocumentHandler) Page(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, r, h.logger, document.ErrNoDocumentSource)
		return
	}
	n, ok := intParam(w, r, "page", chi.URLParam(r, "page"))
	if !ok {
		return
	}
	page, err := h.loader.Page(n)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}

// Download handles GET /v1/documents/reference/file.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, r, h.logger, document.ErrNoDocumentSource)
		return
	}
	raw, err := h.loader.Bytes()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Attachment(w, r, "application/pdf", document.DownloadName, raw)
}
