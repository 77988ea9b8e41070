package ingest

import (
	"context"

	"github.com/kunstwinkel/zoeker/internal/catalog"
)

// Snapshot is one full export of the upstream catalog: every record the
// pipeline needs for a complete sync, in upstream identifiers.
type Snapshot struct {
	Products      []catalog.Record `json:"products"`
	Variants      []Variant        `json:"variants"`
	Brands        []Brand          `json:"brands"`
	Categories    []Category       `json:"categories"`
	CategoryLinks []CategoryLink   `json:"categoryLinks"`
	Tags          []Tag            `json:"tags"`
	TagLinks      []TagLink        `json:"tagLinks"`
}

// Variant carries price and stock data keyed by product identifier.
// When a product has multiple variants the first one wins.
type Variant struct {
	ProductID string   `json:"productId"`
	Price     float64  `json:"price"`
	OldPrice  *float64 `json:"oldPrice,omitempty"`
	Stock     int      `json:"stock"`
	Sold      int      `json:"sold"`
}

// Brand is an upstream brand record; its name doubles as the artist name.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is an upstream category record.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryLink relates a category to a product.
type CategoryLink struct {
	CategoryID string `json:"categoryId"`
	ProductID  string `json:"productId"`
}

// Tag is an upstream tag record.
type Tag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// TagLink relates a tag to a product.
type TagLink struct {
	TagID     string `json:"tagId"`
	ProductID string `json:"productId"`
}

// Source supplies catalog snapshots. The upstream sync cadence and
// transport live behind this interface.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}
