package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"luxury-market/internal/middleware"
	"luxury-market/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest is the create payload for both registries.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// deleteCategoryRequest carries the optional replacement for a delete.
type deleteCategoryRequest struct {
	Replacement string `json:"replacement"`
}

// renameCategoryRequest carries the new name for a rename.
type renameCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryHandler exposes the category and mode-subcategory registries to the
// admin panel.
type CategoryHandler struct {
	categories *service.CategoryService
	logger     *zap.Logger
}

func NewCategoryHandler(categories *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// RegisterRoutes registers the admin registry routes.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/categories", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Patch("/{name}", h.RenameCategory)
		r.Delete("/{name}", h.DeleteCategory)
	})

	r.Route("/api/admin/mode-subcategories", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.ListModeSubcategories)
		r.Post("/", h.CreateModeSubcategory)
		r.Patch("/{name}", h.RenameModeSubcategory)
		r.Delete("/{name}", h.DeleteModeSubcategory)
	})
}

// nameParam decodes the URL name segment; registry names may carry accents
// and spaces.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// categoryErrorStatus maps registry errors onto the admin API contract:
// deletion blocked pending a replacement choice is a conflict, as is renaming
// into the reserved top-level namespace; the rest of the validation failures
// are plain bad requests.
func categoryErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrReplacementRequired):
		return http.StatusConflict
	case errors.Is(err, service.ErrReservedName):
		return http.StatusConflict
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrReplacementSame):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *CategoryHandler) respondError(w http.ResponseWriter, err error, op string) {
	status := categoryErrorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Category operation failed", zap.String("op", op), zap.Error(err))
		middleware.RespondWithError(w, status, "failed to "+op)
		return
	}
	middleware.RespondWithError(w, status, err.Error())
}

// ListCategories returns every known category with usage counts.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	infos, err := h.categories.GetCategoryInfos(r.Context())
	if err != nil {
		h.respondError(w, err, "list categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, infos)
}

// CreateCategory registers a category; creating an existing name is an OK
// no-op rather than a conflict.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "category name is required")
		return
	}

	created, name, err := h.categories.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, err, "create category")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.RespondWithJSON(w, status, map[string]any{"created": created, "name": name})
}

// RenameCategory renames (or merges) a category.
func (h *CategoryHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req renameCategoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reassigned, merged, err := h.categories.RenameCategory(r.Context(), nameParam(r), req.Name)
	if err != nil {
		h.respondError(w, err, "rename category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"reassigned": reassigned,
		"merged":     merged,
	})
}

// DeleteCategory deletes a category, reassigning its products when a
// replacement is supplied; responds 409 when one is needed but missing.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var req deleteCategoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reassigned, err := h.categories.DeleteCategory(r.Context(), nameParam(r), req.Replacement)
	if err != nil {
		h.respondError(w, err, "delete category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"reassigned": reassigned,
	})
}

// ListModeSubcategories returns every known clothing subcategory with usage
// counts.
func (h *CategoryHandler) ListModeSubcategories(w http.ResponseWriter, r *http.Request) {
	infos, err := h.categories.GetModeSubcategoryInfos(r.Context())
	if err != nil {
		h.respondError(w, err, "list subcategories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, infos)
}

// CreateModeSubcategory registers a clothing subcategory.
func (h *CategoryHandler) CreateModeSubcategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "subcategory name is required")
		return
	}

	created, name, err := h.categories.CreateModeSubcategory(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, err, "create subcategory")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.RespondWithJSON(w, status, map[string]any{"created": created, "name": name})
}

// RenameModeSubcategory renames (or merges) a clothing subcategory.
func (h *CategoryHandler) RenameModeSubcategory(w http.ResponseWriter, r *http.Request) {
	var req renameCategoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reassigned, merged, err := h.categories.RenameModeSubcategory(r.Context(), nameParam(r), req.Name)
	if err != nil {
		h.respondError(w, err, "rename subcategory")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"reassigned": reassigned,
		"merged":     merged,
	})
}

// DeleteModeSubcategory deletes a clothing subcategory. Without a replacement
// its products fall back to the top-level "Vêtements" category.
func (h *CategoryHandler) DeleteModeSubcategory(w http.ResponseWriter, r *http.Request) {
	var req deleteCategoryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reassigned, err := h.categories.DeleteModeSubcategory(r.Context(), nameParam(r), req.Replacement)
	if err != nil {
		h.respondError(w, err, "delete subcategory")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"reassigned": reassigned,
	})
}
