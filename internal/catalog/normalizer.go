// Package catalog normalizes raw catalog records into embedding input
// and derived product attributes.
package catalog

import (
	"html"
	"regexp"
	"strings"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

// Record is one raw catalog record as delivered by the upstream shop.
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	FullTitle   string `json:"fullTitle"`
	Description string `json:"description"`
	Content     string `json:"content"`
	BrandID     string `json:"brandId"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Visible     bool   `json:"visible"`
}

// Lookups carries the name-resolution tables for one ingestion run.
// All maps are keyed by upstream identifiers.
type Lookups struct {
	Brands            map[string]string
	Categories        map[string]string
	Tags              map[string]string
	ProductCategories map[string][]string
	ProductTags       map[string][]string
}

// Normalized is the derived output for one record.
type Normalized struct {
	EmbeddingText string
	Type          domain.ProductType
	Artist        string
	Dimensions    string
}

// Normalize turns one raw record plus lookup tables into embedding input
// text and derived attributes. It never fails: unresolvable signals
// degrade to the unknown type and empty strings.
func Normalize(rec Record, l Lookups) Normalized {
	desc := StripHTML(rec.Description)
	content := StripHTML(rec.Content)

	categories := resolveNames(l.ProductCategories[rec.ID], l.Categories)
	tags := resolveNames(l.ProductTags[rec.ID], l.Tags)
	artist := l.Brands[rec.BrandID]

	return Normalized{
		EmbeddingText: buildEmbeddingText(rec.Title, rec.FullTitle, desc, content, artist, categories, tags),
		Type:          ClassifyType(rec.Title, desc, categories),
		Artist:        artist,
		Dimensions:    ExtractDimensions(desc, content),
	}
}

// buildEmbeddingText concatenates all semantic fields, space-joined.
// Missing fields are omitted, not inserted as placeholders. The result
// is never persisted; it exists only to feed the embedder.
func buildEmbeddingText(title, fullTitle, desc, content, artist string, categories, tags []string) string {
	parts := make([]string, 0, 6+len(categories)+len(tags))
	for _, p := range []string{title, fullTitle, desc, content, artist} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, categories...)
	parts = append(parts, tags...)
	return strings.Join(parts, " ")
}

func resolveNames(ids []string, names map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			out = append(out, name)
		}
	}
	return out
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup and collapses whitespace. Best-effort: the
// output feeds embeddings and pattern scans, not rendering.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// typeRule maps signal keywords to a product type. Rules are evaluated
// in order; the first keyword hit wins.
type typeRule struct {
	ptype    domain.ProductType
	keywords []string
}

var typeRules = []typeRule{
	{domain.TypeStatue, []string{"beeld", "sculptuur", "sculpture", "statue", "figurine"}},
	{domain.TypePainting, []string{"schilderij", "painting", "canvas"}},
	{domain.TypeVase, []string{"vaas", "vazen", "vase"}},
	{domain.TypeJewelry, []string{"sieraad", "sieraden", "ketting", "armband", "oorbel", "jewelry", "jewellery"}},
	{domain.TypeWallDecoration, []string{"wanddecoratie", "wandbord", "muurdecoratie", "wall decoration"}},
	{domain.TypeHomeware, []string{"woonaccessoire", "windlicht", "theelicht", "onderzetter", "homeware"}},
}

// ClassifyType derives the product type from title, description and
// category names. Title signals outrank category signals, which outrank
// description signals. Unresolvable records get TypeUnknown.
func ClassifyType(title, description string, categoryNames []string) domain.ProductType {
	signals := []string{
		strings.ToLower(title),
		strings.ToLower(strings.Join(categoryNames, " ")),
		strings.ToLower(description),
	}

	for _, signal := range signals {
		if signal == "" {
			continue
		}
		for _, rule := range typeRules {
			for _, kw := range rule.keywords {
				if strings.Contains(signal, kw) {
					return rule.ptype
				}
			}
		}
	}
	return domain.TypeUnknown
}
