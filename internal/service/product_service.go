package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"luxury-market/internal/domain"
	"luxury-market/internal/repository"
	"luxury-market/internal/taxonomy"
)

var (
	ErrImageRequired = errors.New("at least one product image is required")
)

// ProductService owns everything both storage backends must agree on:
// id and slug generation, image normalization and partial-update merging.
// The repositories only move records.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

var nonAlphanumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a product name: lowercase, diacritics
// stripped, non-alphanumeric runs collapsed to hyphens.
func Slugify(name string) string {
	slug := nonAlphanumRe.ReplaceAllString(taxonomy.Normalize(name), "-")
	return strings.Trim(slug, "-")
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateID builds an opaque id: base36 timestamp prefix plus a random
// base36 suffix. Not sortable, not cryptographic; just unique enough.
func generateID() string {
	suffix := make([]byte, 11)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(suffix)
}

// uniqueSlug finds the first free slug for name, appending -1, -2, … on
// collision. excludeID skips the record being renamed.
func (s *ProductService) uniqueSlug(ctx context.Context, name, excludeID string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "produit"
	}

	slug := base
	for suffix := 1; ; suffix++ {
		existing, err := s.products.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return slug, nil
			}
			return "", fmt.Errorf("failed to check slug %q: %w", slug, err)
		}
		if existing.ID == excludeID {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(suffix)
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) ListByUniverse(ctx context.Context, universe domain.Universe) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []domain.Product{}
	for _, p := range products {
		if p.Universe == universe {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

// Add creates a product, assigning its id and slug. At least one image must
// resolve from the explicit list or the legacy single field.
func (s *ProductService) Add(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	images := domain.NormalizeImages(input.Images, input.Image)
	if len(images) == 0 {
		return nil, ErrImageRequired
	}

	slug, err := s.uniqueSlug(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          generateID(),
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Universe:    input.Universe,
		Image:       images[0],
		Images:      images,
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
		ColorImages: taxonomy.NormalizeColorImages(input.ColorImages),
		Sizes:       input.Sizes,
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update merges a partial input onto the existing record. A name change
// regenerates the slug with the usual collision avoidance, skipping the
// record's own id. Returns repository.ErrProductNotFound for unknown ids.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}
	if patch.Category != nil {
		updated.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Universe != nil {
		updated.Universe = *patch.Universe
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Color != nil {
		updated.Color = strings.TrimSpace(*patch.Color)
	}
	if patch.ColorImages != nil {
		updated.ColorImages = taxonomy.NormalizeColorImages(patch.ColorImages)
	}
	if patch.Sizes != nil {
		updated.Sizes = patch.Sizes
	}

	if patch.Image != nil || patch.Images != nil {
		legacy := ""
		if patch.Image != nil {
			legacy = *patch.Image
		}
		images := domain.NormalizeImages(patch.Images, legacy)
		if len(images) == 0 {
			return nil, ErrImageRequired
		}
		updated.Image = images[0]
		updated.Images = images
	} else {
		updated.NormalizeImages()
	}

	if updated.Name != existing.Name {
		slug, err := s.uniqueSlug(ctx, updated.Name, id)
		if err != nil {
			return nil, err
		}
		updated.Slug = slug
	}

	if err := s.products.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product, reporting whether anything was removed.
func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	return s.products.Delete(ctx, id)
}
