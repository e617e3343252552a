package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"luxury-market/internal/domain"
)

type postgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a product repository over the SQL
// backend. The schema is expected to be migrated before first use.
func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, slug, name, price, category, universe, image, images, description, color, color_images, sizes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p              domain.Product
		color          sql.NullString
		rawImages      []byte
		rawColorImages []byte
		rawSizes       []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Price,
		&p.Category,
		&p.Universe,
		&p.Image,
		&rawImages,
		&p.Description,
		&color,
		&rawColorImages,
		&rawSizes,
	)
	if err != nil {
		return nil, err
	}

	p.Color = color.String
	if len(rawImages) > 0 {
		if err := json.Unmarshal(rawImages, &p.Images); err != nil {
			p.Images = nil
		}
	}
	if len(rawColorImages) > 0 {
		if err := json.Unmarshal(rawColorImages, &p.ColorImages); err != nil {
			p.ColorImages = nil
		}
	}
	if len(rawSizes) > 0 {
		if err := json.Unmarshal(rawSizes, &p.Sizes); err != nil {
			p.Sizes = nil
		}
	}

	p.NormalizeImages()
	return &p, nil
}

func marshalOrNull(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func productJSONFields(p *domain.Product) (images, colorImages, sizes any, err error) {
	if images, err = marshalOrNull(p.Images, len(p.Images) == 0); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}
	if colorImages, err = marshalOrNull(p.ColorImages, len(p.ColorImages) == 0); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode color images: %w", err)
	}
	if sizes, err = marshalOrNull(p.Sizes, len(p.Sizes) == 0); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode sizes: %w", err)
	}
	return images, colorImages, sizes, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *postgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *postgresProductRepository) findBy(ctx context.Context, column, value string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1`, productColumns, column)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by %s: %w", column, err)
	}
	return p, nil
}

func (r *postgresProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findBy(ctx, "id", id)
}

func (r *postgresProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findBy(ctx, "slug", slug)
}

func (r *postgresProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	images, colorImages, sizes, err := productJSONFields(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, slug, name, price, category, universe, image, images, description, color, color_images, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Slug,
		product.Name,
		product.Price,
		product.Category,
		product.Universe,
		product.Image,
		images,
		product.Description,
		nullableString(product.Color),
		colorImages,
		sizes,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	images, colorImages, sizes, err := productJSONFields(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET slug = $2, name = $3, price = $4, category = $5, universe = $6,
		    image = $7, images = $8, description = $9, color = $10,
		    color_images = $11, sizes = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Slug,
		product.Name,
		product.Price,
		product.Category,
		product.Universe,
		product.Image,
		images,
		product.Description,
		nullableString(product.Color),
		colorImages,
		sizes,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *postgresProductRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category = $1`, category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return count, nil
}

func (r *postgresProductRepository) ReplaceCategory(ctx context.Context, oldCategory, newCategory string) (int, error) {
	if oldCategory == newCategory {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET category = $2 WHERE category = $1`,
		oldCategory, newCategory,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to replace category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
