package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"luxury-market/internal/domain"
	"luxury-market/internal/repository"
	"luxury-market/internal/taxonomy"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrNameRequired        = errors.New("category name is required")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrReplacementRequired = errors.New("category still has products; choose a replacement category")
	ErrReplacementSame     = errors.New("replacement category must be different")
	ErrReservedName        = errors.New("name conflicts with a top-level mode category")
)

// clothingFallback is where products land when their mode subcategory is
// deleted without a replacement: they stay classified as clothing, just
// without the finer distinction.
const clothingFallback = "Vêtements"

// CategoryService maintains the category and mode-subcategory registries and
// polices safe rename/delete. A category "exists" as the union of registered
// names, names products currently carry, and the built-in taxonomy.
type CategoryService struct {
	products      repository.ProductRepository
	categories    repository.CategoryStore
	subcategories repository.CategoryStore
}

func NewCategoryService(
	products repository.ProductRepository,
	categories repository.CategoryStore,
	subcategories repository.CategoryStore,
) *CategoryService {
	return &CategoryService{
		products:      products,
		categories:    categories,
		subcategories: subcategories,
	}
}

// uniqSorted trims, dedupes and sorts with French collation, matching how the
// storefront displays category lists.
func uniqSorted(values []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, raw := range values {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	collate.New(language.French).SortStrings(out)
	return out
}

func contains(values []string, name string) bool {
	for _, v := range values {
		if v == name {
			return true
		}
	}
	return false
}

func isTopLevelModeCategory(name string) bool {
	return contains(taxonomy.ModeCategories, name)
}

// GetCategories returns every known category name: registered ∪ in use on
// products ∪ built-in taxonomy, deduplicated and collated.
func (s *CategoryService) GetCategories(ctx context.Context) ([]string, error) {
	registered, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registered categories: %w", err)
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	names := make([]string, 0, len(registered)+len(products)+16)
	names = append(names, registered...)
	for _, p := range products {
		names = append(names, p.Category)
	}
	names = append(names, taxonomy.ModeCategories...)
	names = append(names, taxonomy.ModeClothingSubcategories...)
	names = append(names, taxonomy.UniverseCategories...)
	return uniqSorted(names), nil
}

// GetCategoryInfos pairs every known category with its exact-string product
// usage count.
func (s *CategoryService) GetCategoryInfos(ctx context.Context) ([]domain.CategoryInfo, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, categories)
}

func (s *CategoryService) withCounts(ctx context.Context, names []string) ([]domain.CategoryInfo, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	infos := make([]domain.CategoryInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, domain.CategoryInfo{Name: name, Count: counts[name]})
	}
	return infos, nil
}

// CreateCategory registers a new category name. Creating an existing name is
// a no-op reporting created=false.
func (s *CategoryService) CreateCategory(ctx context.Context, rawName string) (bool, string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return false, "", ErrNameRequired
	}

	existing, err := s.GetCategories(ctx)
	if err != nil {
		return false, "", err
	}
	if contains(existing, name) {
		return false, name, nil
	}

	if err := s.categories.Add(ctx, name); err != nil {
		return false, "", err
	}
	return true, name, nil
}

// DeleteCategory removes a category. A category still carrying products
// cannot be deleted without a replacement; with one, every product is
// reassigned first. Returns the number of reassigned products.
func (s *CategoryService) DeleteCategory(ctx context.Context, rawName, rawReplacement string) (int, error) {
	name := strings.TrimSpace(rawName)
	replacement := strings.TrimSpace(rawReplacement)

	if name == "" {
		return 0, ErrNameRequired
	}
	if replacement != "" && replacement == name {
		return 0, ErrReplacementSame
	}

	usage, err := s.products.CountByCategory(ctx, name)
	if err != nil {
		return 0, err
	}

	reassigned := 0
	if usage > 0 {
		if replacement == "" {
			return 0, ErrReplacementRequired
		}
		if _, _, err := s.CreateCategory(ctx, replacement); err != nil {
			return 0, err
		}
		if reassigned, err = s.products.ReplaceCategory(ctx, name, replacement); err != nil {
			return 0, err
		}
	}

	if err := s.categories.Remove(ctx, name); err != nil {
		return reassigned, err
	}
	return reassigned, nil
}

// RenameCategory moves every product from name to nextName and retires name.
// Renaming onto an existing category merges the two; merged reports that.
func (s *CategoryService) RenameCategory(ctx context.Context, rawName, rawNextName string) (int, bool, error) {
	name := strings.TrimSpace(rawName)
	nextName := strings.TrimSpace(rawNextName)

	if name == "" || nextName == "" {
		return 0, false, ErrNameRequired
	}

	existing, err := s.GetCategories(ctx)
	if err != nil {
		return 0, false, err
	}
	if !contains(existing, name) {
		return 0, false, ErrCategoryNotFound
	}
	if name == nextName {
		return 0, false, nil
	}

	merged := contains(existing, nextName)
	if _, _, err := s.CreateCategory(ctx, nextName); err != nil {
		return 0, false, err
	}
	reassigned, err := s.products.ReplaceCategory(ctx, name, nextName)
	if err != nil {
		return 0, false, err
	}
	if err := s.categories.Remove(ctx, name); err != nil {
		return reassigned, merged, err
	}
	return reassigned, merged, nil
}

// GetModeSubcategories returns every known clothing subcategory: registered ∪
// in use on products ∪ the built-in set. Top-level mode category names are
// never subcategories, so products carrying one do not contribute it.
func (s *CategoryService) GetModeSubcategories(ctx context.Context) ([]string, error) {
	registered, err := s.subcategories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registered subcategories: %w", err)
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	names := make([]string, 0, len(registered)+len(products)+len(taxonomy.ModeClothingSubcategories))
	names = append(names, registered...)
	for _, p := range products {
		if isTopLevelModeCategory(strings.TrimSpace(p.Category)) {
			continue
		}
		names = append(names, p.Category)
	}
	names = append(names, taxonomy.ModeClothingSubcategories...)
	return uniqSorted(names), nil
}

// GetModeSubcategoryInfos pairs every known subcategory with its usage count.
func (s *CategoryService) GetModeSubcategoryInfos(ctx context.Context) ([]domain.CategoryInfo, error) {
	subcategories, err := s.GetModeSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, subcategories)
}

// CreateModeSubcategory registers a clothing subcategory. Names colliding
// with a top-level mode category are rejected to keep the two namespaces
// separate.
func (s *CategoryService) CreateModeSubcategory(ctx context.Context, rawName string) (bool, string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return false, "", ErrNameRequired
	}
	if isTopLevelModeCategory(name) {
		return false, "", ErrReservedName
	}

	existing, err := s.GetModeSubcategories(ctx)
	if err != nil {
		return false, "", err
	}
	if contains(existing, name) {
		return false, name, nil
	}

	if err := s.subcategories.Add(ctx, name); err != nil {
		return false, "", err
	}
	return true, name, nil
}

// DeleteModeSubcategory removes a clothing subcategory. Unlike plain category
// deletion, a missing replacement does not block: products fall back to the
// top-level "Vêtements" bucket. The asymmetry is the product's intent.
func (s *CategoryService) DeleteModeSubcategory(ctx context.Context, rawName, rawReplacement string) (int, error) {
	name := strings.TrimSpace(rawName)
	replacement := strings.TrimSpace(rawReplacement)

	if name == "" {
		return 0, ErrNameRequired
	}
	if replacement != "" && replacement == name {
		return 0, ErrReplacementSame
	}

	usage, err := s.products.CountByCategory(ctx, name)
	if err != nil {
		return 0, err
	}

	reassigned := 0
	if usage > 0 {
		if replacement == "" {
			replacement = clothingFallback
		}
		if err := s.ensureSubcategoryTarget(ctx, replacement); err != nil {
			return 0, err
		}
		if reassigned, err = s.products.ReplaceCategory(ctx, name, replacement); err != nil {
			return 0, err
		}
	}

	if err := s.subcategories.Remove(ctx, name); err != nil {
		return reassigned, err
	}
	return reassigned, nil
}

// ensureSubcategoryTarget registers a reassignment target unless it is a
// top-level mode category, which always exists.
func (s *CategoryService) ensureSubcategoryTarget(ctx context.Context, name string) error {
	if isTopLevelModeCategory(name) {
		return nil
	}
	existing, err := s.GetModeSubcategories(ctx)
	if err != nil {
		return err
	}
	if contains(existing, name) {
		return nil
	}
	return s.subcategories.Add(ctx, name)
}

// RenameModeSubcategory mirrors RenameCategory within the subcategory
// namespace; the new name must not collide with a top-level mode category.
func (s *CategoryService) RenameModeSubcategory(ctx context.Context, rawName, rawNextName string) (int, bool, error) {
	name := strings.TrimSpace(rawName)
	nextName := strings.TrimSpace(rawNextName)

	if name == "" || nextName == "" {
		return 0, false, ErrNameRequired
	}
	if isTopLevelModeCategory(nextName) {
		return 0, false, ErrReservedName
	}

	existing, err := s.GetModeSubcategories(ctx)
	if err != nil {
		return 0, false, err
	}
	if !contains(existing, name) {
		return 0, false, ErrCategoryNotFound
	}
	if name == nextName {
		return 0, false, nil
	}

	merged := contains(existing, nextName)
	if _, _, err := s.CreateModeSubcategory(ctx, nextName); err != nil {
		return 0, false, err
	}
	reassigned, err := s.products.ReplaceCategory(ctx, name, nextName)
	if err != nil {
		return 0, false, err
	}
	if err := s.subcategories.Remove(ctx, name); err != nil {
		return reassigned, merged, err
	}
	return reassigned, merged, nil
}
