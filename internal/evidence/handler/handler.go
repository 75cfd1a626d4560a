package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"auditarmor/internal/evidence"
	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/platform/httputil"
	"auditarmor/pkg/requestcontext"
)

// fileField is the multipart form field carrying the evidence file.
const fileField = "file"

// Service records uploaded evidence.
type Service interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*evidence.Receipt, error)
}

// Handler accepts evidence uploads.
type Handler struct {
	service  Service
	maxBytes int64
	logger   *slog.Logger
}

// New creates an upload handler. Request bodies larger than maxBytes are
// rejected with 413; maxBytes <= 0 disables the limit.
func New(service Service, maxBytes int64, logger *slog.Logger) *Handler {
	return &Handler{service: service, maxBytes: maxBytes, logger: logger}
}

// Register mounts the upload endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/evidence/upload", h.HandleUpload)
}

// HandleUpload handles POST /evidence/upload. The file part is streamed into
// the service without buffering the whole body.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	part, err := h.filePart(r)
	if err != nil {
		h.logger.WarnContext(ctx, "evidence upload rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, classify(err))
		return
	}
	defer part.Close()

	receipt, err := h.service.Upload(ctx, part.FileName(), part)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "evidence upload failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, classify(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, receipt)
}

// filePart walks the multipart stream until it finds the file field.
func (h *Handler) filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "expected multipart/form-data body")
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "missing file field")
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == fileField {
			return part, nil
		}
		part.Close()
	}
}

// classify maps an exceeded body limit to 413 and any other malformed
// multipart stream to 400, wherever in the chain the error surfaced.
func classify(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.Wrap(err, dErrors.CodePayloadTooLarge, "upload exceeds size limit")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed multipart body")
}
