package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

// hitRow is one similarity-query result row. The product columns scan
// into the embedded row; GORM only maps exported fields, so the
// embedded field must stay exported.
type hitRow struct {
	ProductRow  productRow `gorm:"embedded"`
	Similarity  float64    `gorm:"column:similarity"`
	CategoryIDs string     `gorm:"column:category_ids"`
}

const similarityQuery = `
SELECT p.*,
       1 - (p.embedding <=> ?) AS similarity,
       COALESCE((
           SELECT string_agg(cp.category_id, ',')
           FROM category_products cp
           WHERE cp.product_id = p.id
       ), '') AS category_ids
FROM products p
WHERE p.visible
  AND p.embedding IS NOT NULL
  AND 1 - (p.embedding <=> ?) >= ?
ORDER BY similarity DESC, p.stock_sold DESC
LIMIT ?`

// SimilaritySearch returns all visible, embedded products whose cosine
// similarity to the query vector meets the floor, ordered by similarity
// descending with units sold as the tie-break, capped at limit.
func (s *Store) SimilaritySearch(ctx context.Context, vector []float32, floor float64, limit int) ([]domain.Match, error) {
	qv := pgvector.NewVector(vector)

	var rows []hitRow
	err := s.db.WithContext(ctx).
		Raw(similarityQuery, qv, qv, floor, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("similarity query: %v: %w", err, domain.ErrStoreUnavailable)
	}

	hits := make([]domain.Match, len(rows))
	for i := range rows {
		hits[i] = domain.Match{
			Product:     rows[i].ProductRow.toProduct(),
			Similarity:  rows[i].Similarity,
			CategoryIDs: splitIDs(rows[i].CategoryIDs),
		}
	}
	return hits, nil
}

// splitIDs parses the comma-joined string_agg output.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
