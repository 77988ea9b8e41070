// Package ingest orchestrates the catalog ingestion pipeline:
// normalize, embed in batches, upsert into the vector store.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/catalog"
	"github.com/kunstwinkel/zoeker/internal/domain"
)

// DefaultBatchSize is the embedding batch size. A tuning knob, not a
// correctness parameter.
const DefaultBatchSize = 50

// Upserter is the storage contract for ingestion.
type Upserter interface {
	UpsertProduct(ctx context.Context, p domain.Product, categoryIDs, tagIDs []string) error
	UpsertCategory(ctx context.Context, id, name string) error
	UpsertTag(ctx context.Context, id, name string, visible bool) error
}

// Stats summarizes one pipeline run.
type Stats struct {
	Products   int
	Skipped    int
	Batches    int
	Categories int
	Tags       int
}

// Pipeline ingests catalog snapshots. One run is expected to execute
// alone against the store; every write is idempotent, so re-running
// from scratch is the recovery path after a failed batch.
type Pipeline struct {
	store     Upserter
	embedder  domain.BatchEmbedder
	batchSize int
	logger    *zap.Logger
}

// New creates an ingestion pipeline.
func New(store Upserter, embedder domain.BatchEmbedder, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		logger:    logger,
	}
}

// WithBatchSize configures the embedding batch size.
func (p *Pipeline) WithBatchSize(size int) *Pipeline {
	if size > 0 {
		p.batchSize = size
	}
	return p
}

// Run upserts every visible record with a freshly computed embedding.
// A batch failure aborts the run; already-committed batches stay valid.
func (p *Pipeline) Run(ctx context.Context, snap *Snapshot) (Stats, error) {
	var stats Stats

	lookups, variants := buildLookups(snap)

	// Categories and tags go in first: join rows reference them. Tags
	// are upserted regardless of visibility for the same reason.
	for _, c := range snap.Categories {
		if err := p.store.UpsertCategory(ctx, c.ID, c.Name); err != nil {
			return stats, fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
		stats.Categories++
	}
	for _, t := range snap.Tags {
		if err := p.store.UpsertTag(ctx, t.ID, t.Name, t.Visible); err != nil {
			return stats, fmt.Errorf("upsert tag %s: %w", t.ID, err)
		}
		stats.Tags++
	}

	visible := make([]catalog.Record, 0, len(snap.Products))
	for _, rec := range snap.Products {
		if !rec.Visible {
			stats.Skipped++
			continue
		}
		visible = append(visible, rec)
	}

	for start := 0; start < len(visible); start += p.batchSize {
		end := start + p.batchSize
		if end > len(visible) {
			end = len(visible)
		}

		if err := p.runBatch(ctx, visible[start:end], lookups, variants); err != nil {
			return stats, fmt.Errorf("batch %d: %v: %w", stats.Batches, err, domain.ErrIngestionBatch)
		}

		stats.Batches++
		stats.Products += end - start
		p.logger.Info("ingested batch",
			zap.Int("batch", stats.Batches),
			zap.Int("products", stats.Products),
			zap.Int("remaining", len(visible)-end),
		)
	}

	return stats, nil
}

// runBatch normalizes the records, embeds all texts in one provider
// call, then upserts each product with its join rows.
func (p *Pipeline) runBatch(
	ctx context.Context,
	records []catalog.Record,
	lookups catalog.Lookups,
	variants map[string]Variant,
) error {
	normalized := make([]catalog.Normalized, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		normalized[i] = catalog.Normalize(rec, lookups)
		texts[i] = normalized[i].EmbeddingText
	}

	embedded, err := p.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}

	for i, rec := range records {
		product := buildProduct(rec, normalized[i], variants[rec.ID], embedded.Embeddings[i])
		err := p.store.UpsertProduct(ctx, product,
			lookups.ProductCategories[rec.ID], lookups.ProductTags[rec.ID])
		if err != nil {
			return fmt.Errorf("upsert %s: %w", rec.ID, err)
		}
	}
	return nil
}

func buildProduct(rec catalog.Record, n catalog.Normalized, v Variant, embedding []float32) domain.Product {
	return domain.Product{
		ID:          rec.ID,
		Title:       rec.Title,
		FullTitle:   rec.FullTitle,
		Description: catalog.StripHTML(rec.Description),
		Content:     catalog.StripHTML(rec.Content),
		URL:         rec.URL,
		Visible:     rec.Visible,
		Price:       v.Price,
		OldPrice:    v.OldPrice,
		Artist:      n.Artist,
		Dimensions:  n.Dimensions,
		Stock:       v.Stock,
		StockSold:   v.Sold,
		Type:        n.Type,
		Image:       rec.Image,
		Embedding:   embedding,
	}
}

// buildLookups indexes the snapshot's relational records by product ID.
func buildLookups(snap *Snapshot) (catalog.Lookups, map[string]Variant) {
	l := catalog.Lookups{
		Brands:            make(map[string]string, len(snap.Brands)),
		Categories:        make(map[string]string, len(snap.Categories)),
		Tags:              make(map[string]string, len(snap.Tags)),
		ProductCategories: make(map[string][]string),
		ProductTags:       make(map[string][]string),
	}

	for _, b := range snap.Brands {
		l.Brands[b.ID] = b.Name
	}
	for _, c := range snap.Categories {
		l.Categories[c.ID] = c.Name
	}
	for _, t := range snap.Tags {
		l.Tags[t.ID] = t.Name
	}
	for _, link := range snap.CategoryLinks {
		l.ProductCategories[link.ProductID] = append(l.ProductCategories[link.ProductID], link.CategoryID)
	}
	for _, link := range snap.TagLinks {
		l.ProductTags[link.ProductID] = append(l.ProductTags[link.ProductID], link.TagID)
	}

	variants := make(map[string]Variant, len(snap.Variants))
	for _, v := range snap.Variants {
		// First variant wins.
		if _, ok := variants[v.ProductID]; !ok {
			variants[v.ProductID] = v
		}
	}

	return l, variants
}
