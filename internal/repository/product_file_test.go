package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"luxury-market/internal/domain"

	"go.uber.org/zap"
)

func newTestFileRepo(t *testing.T) (ProductRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileProductRepository(dir, zap.NewNop()), dir
}

func sampleProduct(id, slug string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Slug:     slug,
		Name:     "Chemise bleue",
		Price:    15000,
		Category: "Chemise",
		Universe: domain.UniverseMode,
		Image:    "https://cdn.example.com/" + id + ".jpg",
		Images:   []string{"https://cdn.example.com/" + id + ".jpg"},
	}
}

func TestFileRepositoryMissingFileIsEmpty(t *testing.T) {
	repo, _ := newTestFileRepo(t)

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(products))
	}
}

func TestFileRepositoryCorruptFileIsEmpty(t *testing.T) {
	repo, dir := newTestFileRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog for corrupt file, got %d products", len(products))
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	p := sampleProduct("p1", "chemise-bleue")
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	byID, err := repo.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Slug != "chemise-bleue" {
		t.Errorf("Slug = %q", byID.Slug)
	}

	bySlug, err := repo.FindBySlug(ctx, "chemise-bleue")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug.ID != "p1" {
		t.Errorf("ID = %q", bySlug.ID)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFileRepositoryUpdateAndDelete(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	p := sampleProduct("p1", "chemise-bleue")
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}

	p.Price = 20000
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := repo.FindByID(ctx, "p1")
	if updated.Price != 20000 {
		t.Errorf("Price = %d after update", updated.Price)
	}

	ghost := sampleProduct("ghost", "ghost")
	if err := repo.Update(ctx, ghost); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("updating a missing product: got %v", err)
	}

	deleted, err := repo.Delete(ctx, "p1")
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, "p1")
	if err != nil || deleted {
		t.Errorf("second Delete = %v, %v", deleted, err)
	}
}

func TestFileRepositoryReplaceCategory(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	a := sampleProduct("a", "a")
	a.Category = "Chemise"
	b := sampleProduct("b", "b")
	b.Category = "Chemise"
	c := sampleProduct("c", "c")
	c.Category = "Polo"
	for _, p := range []*domain.Product{a, b, c} {
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	count, err := repo.CountByCategory(ctx, "Chemise")
	if err != nil || count != 2 {
		t.Fatalf("CountByCategory = %d, %v", count, err)
	}

	moved, err := repo.ReplaceCategory(ctx, "Chemise", "Chemises")
	if err != nil || moved != 2 {
		t.Fatalf("ReplaceCategory = %d, %v", moved, err)
	}

	count, _ = repo.CountByCategory(ctx, "Chemise")
	if count != 0 {
		t.Errorf("old category still has %d products", count)
	}
	count, _ = repo.CountByCategory(ctx, "Chemises")
	if count != 2 {
		t.Errorf("new category has %d products, want 2", count)
	}

	moved, err = repo.ReplaceCategory(ctx, "Polo", "Polo")
	if err != nil || moved != 0 {
		t.Errorf("same-name replace = %d, %v", moved, err)
	}
}

func TestFileRepositoryNormalizesLegacyImageOnRead(t *testing.T) {
	repo, dir := newTestFileRepo(t)

	legacy := []map[string]any{{
		"id":       "p1",
		"slug":     "montre-acier",
		"name":     "Montre acier",
		"price":    30000,
		"category": "Montres",
		"universe": "tout",
		"image":    "https://cdn.example.com/montre.jpg",
	}}
	raw, _ := json.Marshal(legacy)
	if err := os.WriteFile(filepath.Join(dir, "products.json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := repo.FindByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(p.Images) != 1 || p.Images[0] != "https://cdn.example.com/montre.jpg" {
		t.Errorf("legacy image not lifted into images: %v", p.Images)
	}
}

func TestFileRepositoryWritesPrettyJSON(t *testing.T) {
	repo, dir := newTestFileRepo(t)

	if err := repo.Insert(context.Background(), sampleProduct("p1", "chemise-bleue")); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "products.json"))
	if err != nil {
		t.Fatal(err)
	}
	if raw[0] != '[' || !json.Valid(raw) {
		t.Fatalf("products file is not a JSON array: %s", raw[:min(len(raw), 40)])
	}
	// Hand-editable in dev: indented, one field per line.
	if !bytes.ContainsRune(raw, '\n') {
		t.Error("products file should be pretty-printed")
	}
}
