// Package taxonomy is the static catalog metadata view: category names
// and the closed product-type set. Loaded once at startup and never
// mutated, so concurrent reads need no locking.
package taxonomy

import (
	"context"
	"fmt"
	"sort"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

// CategoryReader supplies the category name map.
type CategoryReader interface {
	Categories(ctx context.Context) (map[string]string, error)
}

// Catalog holds the cached lookup tables.
type Catalog struct {
	categories map[string]string
	themes     []string
}

// Load reads the category map once and builds the cached view.
func Load(ctx context.Context, r CategoryReader) (*Catalog, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	return NewCatalog(categories), nil
}

// NewCatalog builds a catalog from a category id to name map.
func NewCatalog(categories map[string]string) *Catalog {
	themes := make([]string, 0, len(categories))
	for _, name := range categories {
		themes = append(themes, name)
	}
	sort.Strings(themes)

	return &Catalog{categories: categories, themes: themes}
}

// CategoryNames resolves category identifiers to display names,
// dropping unknown identifiers.
func (c *Catalog) CategoryNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := c.categories[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Types returns the closed set of product types.
func (c *Catalog) Types() []string {
	types := domain.AllTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Themes returns all category display names, sorted.
func (c *Catalog) Themes() []string {
	return c.themes
}
