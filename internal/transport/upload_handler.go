package transport

import (
	"net/http"
	"strings"

	"luxury-market/internal/middleware"
	"luxury-market/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadBytes caps product image uploads at 8MB.
const maxUploadBytes = 8 * 1024 * 1024

// UploadHandler handles admin image uploads.
type UploadHandler struct {
	uploads *service.UploadService
	logger  *zap.Logger
}

func NewUploadHandler(uploads *service.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: logger}
}

// RegisterRoutes registers the admin upload route.
func (h *UploadHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/uploads", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.Upload)
	})
}

// Upload accepts a multipart "file" part, pushes it to the image CDN and
// returns the delivery URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		middleware.RespondWithError(w, http.StatusBadRequest, "file must be an image")
		return
	}

	url, err := h.uploads.UploadProductImage(r.Context(), file)
	if err != nil {
		h.logger.Error("Image upload failed", zap.String("filename", header.Filename), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to upload image")
		return
	}

	h.logger.Info("Image uploaded", zap.String("filename", header.Filename))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{"url": url})
}
