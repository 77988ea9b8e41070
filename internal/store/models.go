package store

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

// productRow is the GORM model for the products table. The embedding
// column stays NULL until the ingestion pipeline computes a vector;
// only visible rows with a non-NULL embedding are searchable.
type productRow struct {
	ID          string `gorm:"column:id;primaryKey"`
	Title       string
	FullTitle   string
	Description string
	Content     string
	URL         string
	Visible     bool
	Price       float64
	OldPrice    *float64
	Artist      string
	Dimensions  string
	Stock       int
	StockSold   int
	ProductType string
	Image       string
	Embedding   *pgvector.Vector `gorm:"column:embedding"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRow) TableName() string { return "products" }

type categoryRow struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string
}

func (categoryRow) TableName() string { return "categories" }

type tagRow struct {
	ID      string `gorm:"column:id;primaryKey"`
	Name    string
	Visible bool
}

func (tagRow) TableName() string { return "tags" }

// Join rows reference upstream identifiers and are insert-if-absent:
// ingestion of a single product never removes them.
type categoryProductRow struct {
	CategoryID string `gorm:"column:category_id;primaryKey"`
	ProductID  string `gorm:"column:product_id;primaryKey"`
}

func (categoryProductRow) TableName() string { return "category_products" }

type tagProductRow struct {
	TagID     string `gorm:"column:tag_id;primaryKey"`
	ProductID string `gorm:"column:product_id;primaryKey"`
}

func (tagProductRow) TableName() string { return "tag_products" }

func rowFromProduct(p domain.Product) productRow {
	row := productRow{
		ID:          p.ID,
		Title:       p.Title,
		FullTitle:   p.FullTitle,
		Description: p.Description,
		Content:     p.Content,
		URL:         p.URL,
		Visible:     p.Visible,
		Price:       p.Price,
		OldPrice:    p.OldPrice,
		Artist:      p.Artist,
		Dimensions:  p.Dimensions,
		Stock:       p.Stock,
		StockSold:   p.StockSold,
		ProductType: string(p.Type),
		Image:       p.Image,
	}
	if len(p.Embedding) > 0 {
		v := pgvector.NewVector(p.Embedding)
		row.Embedding = &v
	}
	return row
}

func (r *productRow) toProduct() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		FullTitle:   r.FullTitle,
		Description: r.Description,
		Content:     r.Content,
		URL:         r.URL,
		Visible:     r.Visible,
		Price:       r.Price,
		OldPrice:    r.OldPrice,
		Artist:      r.Artist,
		Dimensions:  r.Dimensions,
		Stock:       r.Stock,
		StockSold:   r.StockSold,
		Type:        domain.ProductType(r.ProductType),
		Image:       r.Image,
	}
	if r.Embedding != nil {
		p.Embedding = r.Embedding.Slice()
	}
	return p
}
