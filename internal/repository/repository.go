package repository

import (
	"context"
	"errors"

	"luxury-market/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. Two
// implementations exist, one over Postgres and one over a flat JSON file;
// the backend is chosen once at startup.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	CountByCategory(ctx context.Context, category string) (int, error)
	ReplaceCategory(ctx context.Context, oldCategory, newCategory string) (int, error)
}

// CategoryStore persists the explicitly registered category names (the
// registry), beyond whatever names products currently carry. The same
// interface backs both categories and mode subcategories.
type CategoryStore interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
}
