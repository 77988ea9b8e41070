package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/catalog"
	"github.com/kunstwinkel/zoeker/internal/domain"
)

// --- Mocks ---

type upsertedProduct struct {
	product     domain.Product
	categoryIDs []string
	tagIDs      []string
}

type mockUpserter struct {
	products   []upsertedProduct
	categories map[string]string
	tags       map[string]string
	failOnID   string
}

func newMockUpserter() *mockUpserter {
	return &mockUpserter{
		categories: make(map[string]string),
		tags:       make(map[string]string),
	}
}

func (m *mockUpserter) UpsertProduct(_ context.Context, p domain.Product, categoryIDs, tagIDs []string) error {
	if m.failOnID != "" && p.ID == m.failOnID {
		return errors.New("store down")
	}
	m.products = append(m.products, upsertedProduct{p, categoryIDs, tagIDs})
	return nil
}

func (m *mockUpserter) UpsertCategory(_ context.Context, id, name string) error {
	m.categories[id] = name
	return nil
}

func (m *mockUpserter) UpsertTag(_ context.Context, id, name string, _ bool) error {
	m.tags[id] = name
	return nil
}

type mockBatchEmbedder struct {
	calls int
	texts [][]string
	err   error
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, texts)
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i]))}
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func testSnapshot() *Snapshot {
	old := 100.0
	return &Snapshot{
		Products: []catalog.Record{
			{ID: "p1", Title: "Kat beeld", Visible: true, BrandID: "b1", URL: "https://shop.example/p1"},
			{ID: "p2", Title: "Verborgen vaas", Visible: false},
			{ID: "p3", Title: "Hond beeld", Visible: true},
		},
		Variants: []Variant{
			{ProductID: "p1", Price: 65, OldPrice: &old, Stock: 3, Sold: 120},
			{ProductID: "p3", Price: 45, Stock: 10, Sold: 2},
		},
		Brands:        []Brand{{ID: "b1", Name: "Jan de Beeldhouwer"}},
		Categories:    []Category{{ID: "c1", Name: "Beelden"}},
		CategoryLinks: []CategoryLink{{CategoryID: "c1", ProductID: "p1"}},
		Tags: []Tag{
			{ID: "t1", Name: "hart", Visible: true},
			{ID: "t2", Name: "intern", Visible: false},
		},
		TagLinks: []TagLink{{TagID: "t1", ProductID: "p1"}},
	}
}

// --- Tests ---

func TestRun_IngestsVisibleProducts(t *testing.T) {
	store := newMockUpserter()
	embedder := &mockBatchEmbedder{}
	p := New(store, embedder, zap.NewNop())

	stats, err := p.Run(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Products != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 2 products, 1 skipped", stats)
	}
	if len(store.products) != 2 {
		t.Fatalf("%d products upserted, want 2", len(store.products))
	}

	first := store.products[0]
	if first.product.ID != "p1" {
		t.Errorf("first upsert = %s, want p1", first.product.ID)
	}
	if first.product.Price != 65 || first.product.Stock != 3 || first.product.StockSold != 120 {
		t.Errorf("variant data not applied: %+v", first.product)
	}
	if first.product.Artist != "Jan de Beeldhouwer" {
		t.Errorf("Artist = %q", first.product.Artist)
	}
	if len(first.product.Embedding) == 0 {
		t.Error("embedding missing on upserted product")
	}
	if len(first.categoryIDs) != 1 || first.categoryIDs[0] != "c1" {
		t.Errorf("categoryIDs = %v", first.categoryIDs)
	}
	if len(first.tagIDs) != 1 || first.tagIDs[0] != "t1" {
		t.Errorf("tagIDs = %v", first.tagIDs)
	}
}

func TestRun_InvisibleTagsStillUpserted(t *testing.T) {
	store := newMockUpserter()
	p := New(store, &mockBatchEmbedder{}, zap.NewNop())

	if _, err := p.Run(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Join rows require the referenced tag to exist, so even invisible
	// tags get their record upserted.
	if _, ok := store.tags["t2"]; !ok {
		t.Error("invisible tag t2 was not upserted")
	}
}

func TestRun_OneEmbeddingCallPerBatch(t *testing.T) {
	embedder := &mockBatchEmbedder{}
	p := New(newMockUpserter(), embedder, zap.NewNop()).WithBatchSize(1)

	stats, err := p.Run(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Batches != 2 {
		t.Errorf("Batches = %d, want 2", stats.Batches)
	}
	if embedder.calls != 2 {
		t.Errorf("embedder calls = %d, want 2", embedder.calls)
	}
}

func TestRun_EmbeddingFailureAbortsRun(t *testing.T) {
	embedder := &mockBatchEmbedder{err: errors.New("quota")}
	p := New(newMockUpserter(), embedder, zap.NewNop())

	_, err := p.Run(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrIngestionBatch) {
		t.Errorf("expected ErrIngestionBatch, got %v", err)
	}
}

func TestRun_BatchFailureKeepsPriorBatches(t *testing.T) {
	store := newMockUpserter()
	store.failOnID = "p3"
	p := New(store, &mockBatchEmbedder{}, zap.NewNop()).WithBatchSize(1)

	_, err := p.Run(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrIngestionBatch) {
		t.Fatalf("expected ErrIngestionBatch, got %v", err)
	}

	// p1's batch committed before p3 failed.
	if len(store.products) != 1 || store.products[0].product.ID != "p1" {
		t.Errorf("prior batch not preserved: %+v", store.products)
	}
}

func TestRun_EmbeddingTextIncludesResolvedNames(t *testing.T) {
	embedder := &mockBatchEmbedder{}
	p := New(newMockUpserter(), embedder, zap.NewNop())

	if _, err := p.Run(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	text := embedder.texts[0][0]
	for _, want := range []string{"Kat beeld", "Jan de Beeldhouwer", "Beelden", "hart"} {
		if !strings.Contains(text, want) {
			t.Errorf("embedding text missing %q: %q", want, text)
		}
	}
}
