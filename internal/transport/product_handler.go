package transport

import (
	"errors"
	"net/http"
	"strings"

	"luxury-market/internal/domain"
	"luxury-market/internal/middleware"
	"luxury-market/internal/repository"
	"luxury-market/internal/service"
	"luxury-market/internal/taxonomy"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogProduct is a product enriched with its display classification and
// color options. The stored category stays free-text; these fields are what
// the storefront filters, groups and renders swatches by.
type CatalogProduct struct {
	domain.Product
	DisplayCategory string        `json:"displayCategory"`
	SubCategory     string        `json:"subCategory,omitempty"`
	ColorOptions    []ColorOption `json:"colorOptions,omitempty"`
}

// ColorOption is one selectable color variant: the raw name, a renderable
// swatch value and the per-color image list when one exists.
type ColorOption struct {
	Name   string   `json:"name"`
	Swatch string   `json:"swatch"`
	Images []string `json:"images,omitempty"`
}

// ProductHandler handles catalog reads and admin product CRUD.
type ProductHandler struct {
	products   *service.ProductService
	categories *service.CategoryService
	logger     *zap.Logger
}

func NewProductHandler(products *service.ProductService, categories *service.CategoryService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// RegisterRoutes registers public catalog routes and the guarded admin routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListCatalog)
		r.Get("/{slug}", h.GetBySlug)
	})

	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.AdminList)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) classify(p domain.Product, knownSubcategories []string) CatalogProduct {
	out := CatalogProduct{Product: p}
	switch p.Universe {
	case domain.UniverseMode:
		out.DisplayCategory = taxonomy.MapModeCategory(p.Category)
		out.SubCategory = taxonomy.MatchModeSubcategory(p.Category, knownSubcategories)
	default:
		out.DisplayCategory = taxonomy.MapUniverseCategory(p.Category)
	}
	for _, name := range taxonomy.ParseColorList(p.Color) {
		out.ColorOptions = append(out.ColorOptions, ColorOption{
			Name:   name,
			Swatch: taxonomy.ColorToSwatch(name),
			Images: taxonomy.ColorImagesFor(p.ColorImages, name),
		})
	}
	return out
}

func (h *ProductHandler) knownSubcategories(r *http.Request) []string {
	known, err := h.categories.GetModeSubcategories(r.Context())
	if err != nil {
		// Classification degrades to the built-in heuristic.
		h.logger.Warn("Failed to load registered subcategories", zap.Error(err))
		return nil
	}
	return known
}

// ListCatalog handles the public catalog listing, optionally filtered by
// universe.
func (h *ProductHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		err      error
	)

	if raw := r.URL.Query().Get("universe"); raw != "" {
		universe := domain.Universe(raw)
		if !universe.IsValid() {
			middleware.RespondWithError(w, http.StatusBadRequest, "universe must be 'mode' or 'tout'")
			return
		}
		products, err = h.products.ListByUniverse(r.Context(), universe)
	} else {
		products, err = h.products.List(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	known := h.knownSubcategories(r)
	catalog := make([]CatalogProduct, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, h.classify(p, known))
	}

	middleware.RespondWithJSON(w, http.StatusOK, catalog)
}

// GetBySlug handles the public product page lookup.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err), zap.String("slug", slug))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.classify(*product, h.knownSubcategories(r)))
}

// AdminList returns the raw product records for the admin panel.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create handles admin product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput

	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Add(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrImageRequired) {
			middleware.RespondWithError(w, http.StatusBadRequest, "at least one product image is required")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("id", product.ID),
		zap.String("slug", product.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles admin partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.ProductPatch
	if err := middleware.DecodeAndValidate(r, &patch); err != nil {
		h.logger.Debug("Product patch validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if patch.Universe != nil && !patch.Universe.IsValid() {
		middleware.RespondWithError(w, http.StatusBadRequest, "universe must be 'mode' or 'tout'")
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	product, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrImageRequired):
			middleware.RespondWithError(w, http.StatusBadRequest, "at least one product image is required")
		default:
			h.logger.Error("Failed to update product", zap.Error(err), zap.String("id", id))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles admin product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.products.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if !deleted {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product deleted", zap.String("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
