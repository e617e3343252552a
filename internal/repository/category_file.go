package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// fileCategoryStore persists registered names as a pretty-printed, sorted
// JSON array of strings. CategoriesFile and ModeSubcategoriesFile name the
// two registries it backs.
type fileCategoryStore struct {
	path   string
	logger *zap.Logger
}

const (
	CategoriesFile        = "categories.json"
	ModeSubcategoriesFile = "mode-subcategories.json"
)

// NewFileCategoryStore creates a registry store over <dataDir>/<file>.
func NewFileCategoryStore(dataDir, file string, logger *zap.Logger) CategoryStore {
	return &fileCategoryStore{
		path:   filepath.Join(dataDir, file),
		logger: logger,
	}
}

func (s *fileCategoryStore) read() []string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read registry file, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		s.logger.Warn("Malformed registry file, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return dedupeSorted(names)
}

func (s *fileCategoryStore) write(names []string) error {
	raw, err := json.MarshalIndent(dedupeSorted(names), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func dedupeSorted(names []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, raw := range names {
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
	sort.Strings(out)
	return out
}

func (s *fileCategoryStore) List(_ context.Context) ([]string, error) {
	return s.read(), nil
}

func (s *fileCategoryStore) Add(_ context.Context, name string) error {
	return s.write(append(s.read(), name))
}

func (s *fileCategoryStore) Remove(_ context.Context, name string) error {
	current := s.read()
	next := current[:0:0]
	for _, n := range current {
		if n != name {
			next = append(next, n)
		}
	}
	return s.write(next)
}
