package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"reflect"
	"testing"
	"time"

	"luxury-market/internal/domain"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	// The migrated schema, inlined.
	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			price INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			universe TEXT NOT NULL CHECK (universe IN ('mode', 'tout')),
			image TEXT NOT NULL DEFAULT '',
			images JSONB,
			description TEXT NOT NULL DEFAULT '',
			color TEXT,
			color_images JSONB,
			sizes JSONB
		);
		CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS mode_subcategories (
			name TEXT PRIMARY KEY
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func clearTestDB(t *testing.T) {
	t.Helper()
	for _, table := range []string{"products", "categories", "mode_subcategories"} {
		if _, err := testDB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clear %s: %v", table, err)
		}
	}
}

func pgSample(id, slug, category string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Slug:        slug,
		Name:        "Chemise bleue",
		Price:       15000,
		Category:    category,
		Universe:    domain.UniverseMode,
		Image:       "https://cdn.example.com/a.jpg",
		Images:      []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		Description: "Coupe droite",
		Color:       "Bleu",
		ColorImages: map[string][]string{"Bleu": {"https://cdn.example.com/a.jpg"}},
		Sizes:       []string{"S", "M", "L"},
	}
}

func TestPostgresProductRoundTrip(t *testing.T) {
	clearTestDB(t)
	repo := NewPostgresProductRepository(testDB)
	ctx := context.Background()

	want := pgSample("p1", "chemise-bleue", "Chemise")
	if err := repo.Insert(ctx, want); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindByID = %+v, want %+v", got, want)
	}

	bySlug, err := repo.FindBySlug(ctx, "chemise-bleue")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug.ID != "p1" {
		t.Errorf("FindBySlug ID = %q", bySlug.ID)
	}

	if _, err := repo.FindByID(ctx, "missing"); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPostgresProductNullableFields(t *testing.T) {
	clearTestDB(t)
	repo := NewPostgresProductRepository(testDB)
	ctx := context.Background()

	p := &domain.Product{
		ID:       "p1",
		Slug:     "montre",
		Name:     "Montre",
		Price:    30000,
		Category: "Montres",
		Universe: domain.UniverseTout,
		Image:    "https://cdn.example.com/m.jpg",
		Images:   []string{"https://cdn.example.com/m.jpg"},
	}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.FindByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Color != "" || got.ColorImages != nil || got.Sizes != nil {
		t.Errorf("nullable fields should come back empty: %+v", got)
	}
}

func TestPostgresProductUpdateAndDelete(t *testing.T) {
	clearTestDB(t)
	repo := NewPostgresProductRepository(testDB)
	ctx := context.Background()

	p := pgSample("p1", "chemise-bleue", "Chemise")
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}

	p.Price = 20000
	p.Slug = "chemise-marine"
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.FindByID(ctx, "p1")
	if got.Price != 20000 || got.Slug != "chemise-marine" {
		t.Errorf("after update: %+v", got)
	}

	ghost := pgSample("ghost", "ghost", "Chemise")
	if err := repo.Update(ctx, ghost); err != ErrProductNotFound {
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

func TestPostgresReplaceCategory(t *testing.T) {
	clearTestDB(t)
	repo := NewPostgresProductRepository(testDB)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		category := "Chemise"
		if i == 2 {
			category = "Polo"
		}
		if err := repo.Insert(ctx, pgSample(id, "slug-"+id, category)); err != nil {
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
	count, _ = repo.CountByCategory(ctx, "Chemises")
	if count != 2 {
		t.Errorf("new category count = %d", count)
	}

	moved, err = repo.ReplaceCategory(ctx, "Polo", "Polo")
	if err != nil || moved != 0 {
		t.Errorf("same-name replace = %d, %v", moved, err)
	}
}

func TestPostgresCategoryStore(t *testing.T) {
	clearTestDB(t)
	ctx := context.Background()

	cats := NewPostgresCategoryStore(testDB, CategoriesTable)
	subs := NewPostgresCategoryStore(testDB, ModeSubcategoriesTable)

	for _, name := range []string{"Montres", "Casquettes", "Montres"} {
		if err := cats.Add(ctx, name); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
	}
	if err := subs.Add(ctx, "Gilet"); err != nil {
		t.Fatal(err)
	}

	names, err := cats.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"Casquettes", "Montres"}) {
		t.Errorf("categories = %v", names)
	}

	subNames, _ := subs.List(ctx)
	if !reflect.DeepEqual(subNames, []string{"Gilet"}) {
		t.Errorf("subcategories = %v", subNames)
	}

	if err := cats.Remove(ctx, "Montres"); err != nil {
		t.Fatal(err)
	}
	names, _ = cats.List(ctx)
	if !reflect.DeepEqual(names, []string{"Casquettes"}) {
		t.Errorf("after remove = %v", names)
	}
}
