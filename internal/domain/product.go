package domain

import "math"

// ProductType is the closed classification set for catalog products.
type ProductType string

// Known product types. Records that match none of the classification
// signals get TypeUnknown; classification never fails ingestion.
const (
	TypeStatue         ProductType = "statue"
	TypePainting       ProductType = "painting"
	TypeVase           ProductType = "vase"
	TypeJewelry        ProductType = "jewelry"
	TypeWallDecoration ProductType = "wall_decoration"
	TypeHomeware       ProductType = "homeware"
	TypeUnknown        ProductType = "unknown"
)

// AllTypes lists every concrete product type (unknown excluded).
func AllTypes() []ProductType {
	return []ProductType{
		TypeStatue, TypePainting, TypeVase,
		TypeJewelry, TypeWallDecoration, TypeHomeware,
	}
}

// Result-badge thresholds. Shared contract between the ingestion side
// (which stores the raw counters) and the query side (which derives the
// badges per request).
const (
	// PopularityThreshold is the minimum cumulative units sold for isPopular.
	PopularityThreshold = 50
	// ScarcityThreshold is the maximum remaining stock for isScarce.
	// Zero stock is unavailable, not scarce.
	ScarcityThreshold = 5
)

// Product is a catalog entity as persisted in the vector store.
// A product is eligible for search only if Visible and its embedding
// has been computed.
type Product struct {
	ID          string
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
	Type        ProductType
	Image       string
	Embedding   []float32
}

// Match is one similarity query result: the stored product, its cosine
// similarity to the query vector, and the aggregated category IDs.
type Match struct {
	Product     Product
	Similarity  float64
	CategoryIDs []string
}

// IsPopular reports whether the sold count crosses the popularity threshold.
func (p *Product) IsPopular() bool {
	return p.StockSold >= PopularityThreshold
}

// IsScarce reports whether stock is low but not exhausted.
func (p *Product) IsScarce() bool {
	return p.Stock > 0 && p.Stock <= ScarcityThreshold
}

// SaleInfo derives the sale flag and discount percentage. A discount
// exists only when a prior price is known and exceeds the current price;
// the percentage is rounded to the nearest whole percent.
func (p *Product) SaleInfo() (onSale bool, discount int) {
	if p.OldPrice == nil || *p.OldPrice <= p.Price {
		return false, 0
	}
	pct := (*p.OldPrice - p.Price) / *p.OldPrice * 100
	return true, int(math.Round(pct))
}
