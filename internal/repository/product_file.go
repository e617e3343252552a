package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"luxury-market/internal/domain"

	"go.uber.org/zap"
)

// fileProductRepository keeps the whole catalog in a pretty-printed JSON
// array, fully rewritten on every mutation. It is the dev/fallback backend:
// concurrent writers can lose updates and a read failure is treated as an
// empty dataset.
type fileProductRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileProductRepository creates a product repository over
// <dataDir>/products.json.
func NewFileProductRepository(dataDir string, logger *zap.Logger) ProductRepository {
	return &fileProductRepository{
		path:   filepath.Join(dataDir, "products.json"),
		logger: logger,
	}
}

func (r *fileProductRepository) read() []domain.Product {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read products file, treating as empty",
				zap.String("path", r.path), zap.Error(err))
		}
		return []domain.Product{}
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		r.logger.Warn("Malformed products file, treating as empty",
			zap.String("path", r.path), zap.Error(err))
		return []domain.Product{}
	}

	for i := range products {
		products[i].NormalizeImages()
	}
	return products
}

func (r *fileProductRepository) write(products []domain.Product) error {
	raw, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write products file: %w", err)
	}
	return nil
}

func (r *fileProductRepository) List(_ context.Context) ([]domain.Product, error) {
	return r.read(), nil
}

func (r *fileProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.read() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *fileProductRepository) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.read() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *fileProductRepository) Insert(_ context.Context, product *domain.Product) error {
	products := r.read()
	products = append(products, *product)
	return r.write(products)
}

func (r *fileProductRepository) Update(_ context.Context, product *domain.Product) error {
	products := r.read()
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return r.write(products)
		}
	}
	return ErrProductNotFound
}

func (r *fileProductRepository) Delete(_ context.Context, id string) (bool, error) {
	products := r.read()
	filtered := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(products) {
		return false, nil
	}
	return true, r.write(filtered)
}

func (r *fileProductRepository) CountByCategory(_ context.Context, category string) (int, error) {
	count := 0
	for _, p := range r.read() {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *fileProductRepository) ReplaceCategory(_ context.Context, oldCategory, newCategory string) (int, error) {
	if oldCategory == newCategory {
		return 0, nil
	}
	products := r.read()
	count := 0
	for i := range products {
		if products[i].Category == oldCategory {
			products[i].Category = newCategory
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return count, r.write(products)
}
