package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// postgresCategoryStore backs a registry with a single name-keyed table.
type postgresCategoryStore struct {
	db    *sql.DB
	table string
}

const (
	CategoriesTable        = "categories"
	ModeSubcategoriesTable = "mode_subcategories"
)

// NewPostgresCategoryStore creates a registry store over one of the fixed
// registry tables. The table name must be one of the package constants; it is
// interpolated into SQL.
func NewPostgresCategoryStore(db *sql.DB, table string) CategoryStore {
	if table != CategoriesTable && table != ModeSubcategoriesTable {
		panic(fmt.Sprintf("unknown registry table %q", table))
	}
	return &postgresCategoryStore{db: db, table: table}
}

func (s *postgresCategoryStore) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", s.table, err)
	}

	return names, nil
}

func (s *postgresCategoryStore) Add(ctx context.Context, name string) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, s.table)
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to add to %s: %w", s.table, err)
	}
	return nil
}

func (s *postgresCategoryStore) Remove(ctx context.Context, name string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", s.table, err)
	}
	return nil
}
