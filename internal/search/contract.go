package search

import (
	"context"

	"github.com/kunstwinkel/zoeker/internal/advice"
	"github.com/kunstwinkel/zoeker/internal/domain"
)

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Repository defines the storage contract for similarity queries.
type Repository interface {
	SimilaritySearch(ctx context.Context, vector []float32, floor float64, limit int) ([]domain.Match, error)
}

// Advisor produces the advisory message. It never fails; generation
// problems are recovered inside the advice layer.
type Advisor interface {
	Generate(ctx context.Context, req advice.Request) string
}

// Taxonomy resolves category names and describes the catalog so the
// advisory message can reference real terms.
type Taxonomy interface {
	CategoryNames(ids []string) []string
	Types() []string
	Themes() []string
}
