// Package search is the query engine: it turns one free-text query into
// ranked, enriched results plus an advisory message.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kunstwinkel/zoeker/internal/advice"
	"github.com/kunstwinkel/zoeker/internal/domain"
	"github.com/kunstwinkel/zoeker/internal/metrics"
)

// Defaults for the ranking contract. The similarity floor is a single
// global cutoff: one value separates plausible match from noise for all
// queries.
const (
	DefaultSimilarityFloor = 0.30
	DefaultResultLimit     = 50
)

// Item is the read-only projection of a product returned to clients.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	FullTitle   string   `json:"fullTitle"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"oldPrice"`
	OnSale      bool     `json:"onSale"`
	Discount    int      `json:"discount"`
	Image       string   `json:"image"`
	Type        string   `json:"type"`
	Artist      string   `json:"artist"`
	Dimensions  string   `json:"dimensions"`
	Stock       int      `json:"stock"`
	StockSold   int      `json:"stockSold"`
	IsPopular   bool     `json:"isPopular"`
	IsScarce    bool     `json:"isScarce"`
	Categories  []string `json:"categories"`
	Similarity  float64  `json:"similarity"`
}

// QueryEcho echoes the request back to the client.
type QueryEcho struct {
	Original string `json:"original"`
	TookMS   int64  `json:"took_ms"`
}

// Results is the result block of a search response. Total always equals
// Showing: there is no pagination.
type Results struct {
	Total   int    `json:"total"`
	Showing int    `json:"showing"`
	Items   []Item `json:"items"`
	Advice  string `json:"advice"`
}

// Response is the full search response payload.
type Response struct {
	Success bool      `json:"success"`
	Query   QueryEcho `json:"query"`
	Results Results   `json:"results"`
}

// Service orchestrates embed, similarity query, enrichment, and advice.
// Requests are independent and stateless; any number may run in
// parallel against the shared read-only store and taxonomy.
type Service struct {
	repo     Repository
	embed    Embedder
	advisor  Advisor
	taxonomy Taxonomy
	floor    float64
	limit    int
	baseURL  string
}

// New creates a query engine.
func New(repo Repository, embed Embedder, advisor Advisor, tax Taxonomy) *Service {
	return &Service{
		repo:     repo,
		embed:    embed,
		advisor:  advisor,
		taxonomy: tax,
		floor:    DefaultSimilarityFloor,
		limit:    DefaultResultLimit,
	}
}

// WithRanking overrides the similarity floor and result cap.
func (s *Service) WithRanking(floor float64, limit int) *Service {
	if floor > 0 {
		s.floor = floor
	}
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// WithProductBaseURL sets the base for resolving relative product URLs.
func (s *Service) WithProductBaseURL(base string) *Service {
	s.baseURL = strings.TrimRight(base, "/")
	return s
}

// Search runs the full query pipeline. A failure at any step surfaces
// as a single error; no partial results are returned.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", domain.ErrInvalidQuery)
	}

	start := time.Now()

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.repo.SimilaritySearch(ctx, emb.Embedding, s.floor, s.limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	items := make([]Item, len(matches))
	for i := range matches {
		items[i] = s.enrich(&matches[i])
	}

	metrics.SearchResults.Observe(float64(len(items)))

	return &Response{
		Success: true,
		Query: QueryEcho{
			Original: query,
			TookMS:   time.Since(start).Milliseconds(),
		},
		Results: Results{
			Total:   len(items),
			Showing: len(items),
			Items:   items,
			Advice:  s.generateAdvice(ctx, query, len(items)),
		},
	}, nil
}

// enrich computes the per-request projection fields for one match.
func (s *Service) enrich(m *domain.Match) Item {
	p := &m.Product
	onSale, discount := p.SaleInfo()

	return Item{
		ID:          p.ID,
		Title:       p.Title,
		FullTitle:   p.FullTitle,
		Description: p.Description,
		URL:         s.productURL(p.URL),
		Price:       p.Price,
		OldPrice:    p.OldPrice,
		OnSale:      onSale,
		Discount:    discount,
		Image:       p.Image,
		Type:        string(p.Type),
		Artist:      p.Artist,
		Dimensions:  p.Dimensions,
		Stock:       p.Stock,
		StockSold:   p.StockSold,
		IsPopular:   p.IsPopular(),
		IsScarce:    p.IsScarce(),
		Categories:  s.taxonomy.CategoryNames(m.CategoryIDs),
		Similarity:  m.Similarity,
	}
}

// productURL resolves a stored relative path against the shop base URL.
// Absolute URLs pass through unchanged.
func (s *Service) productURL(u string) string {
	if s.baseURL == "" || u == "" || strings.Contains(u, "://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return s.baseURL + u
}

func (s *Service) generateAdvice(ctx context.Context, query string, count int) string {
	mode := advice.ModeResults
	if count == 0 {
		mode = advice.ModeEmpty
	}

	return s.advisor.Generate(ctx, advice.Request{
		Mode:        mode,
		Query:       query,
		ResultCount: count,
		Types:       s.taxonomy.Types(),
		Themes:      s.taxonomy.Themes(),
	})
}
