package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/chessdb/chessdb/internal/api/apierr"
	"github.com/chessdb/chessdb/internal/api/response"
	"github.com/chessdb/chessdb/internal/services/ingest"
)

// maxUploadBytes caps ingest uploads at 256 MiB
const maxUploadBytes = 256 << 20

// IngestHandler handles CSV dataset uploads
type IngestHandler struct {
	service *ingest.Service
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(service *ingest.Service) *IngestHandler {
	return &IngestHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/ingest. The CSV can be posted directly as the
// request body, or as a multipart form with a "file" field.
func (h *IngestHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body, err := h.csvBody(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	defer body.Close()

	report, err := h.service.IngestReader(r.Context(), body)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IngestReport{
		Processed: report.Processed,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
	})
}

func (h *IngestHandler) csvBody(r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apierr.NewInvalidRequestError("multipart upload requires a \"file\" field")
	}
	return file, nil
}
