package catalog

import (
	"testing"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

func testLookups() Lookups {
	return Lookups{
		Brands:     map[string]string{"b1": "Jan de Beeldhouwer"},
		Categories: map[string]string{"c1": "Beelden", "c2": "Liefde"},
		Tags:       map[string]string{"t1": "hart", "t2": "brons"},
		ProductCategories: map[string][]string{
			"p1": {"c1", "c2"},
		},
		ProductTags: map[string][]string{
			"p1": {"t1", "t2"},
		},
	}
}

func TestNormalize(t *testing.T) {
	rec := Record{
		ID:          "p1",
		Title:       "Kat met hart",
		FullTitle:   "Bronzen kat met hart",
		Description: "<p>Een vrolijk beeld. Hoogte 24 cm.</p>",
		Content:     "<div>Handgemaakt &amp; uniek</div>",
		BrandID:     "b1",
		Visible:     true,
	}

	n := Normalize(rec, testLookups())

	want := "Kat met hart Bronzen kat met hart Een vrolijk beeld. Hoogte 24 cm. " +
		"Handgemaakt & uniek Jan de Beeldhouwer Beelden Liefde hart brons"
	if n.EmbeddingText != want {
		t.Errorf("EmbeddingText:\ngot:  %q\nwant: %q", n.EmbeddingText, want)
	}
	if n.Type != domain.TypeStatue {
		t.Errorf("Type = %q, want %q", n.Type, domain.TypeStatue)
	}
	if n.Artist != "Jan de Beeldhouwer" {
		t.Errorf("Artist = %q", n.Artist)
	}
	if n.Dimensions != "24 cm" {
		t.Errorf("Dimensions = %q, want %q", n.Dimensions, "24 cm")
	}
}

func TestNormalize_MissingFieldsOmitted(t *testing.T) {
	rec := Record{ID: "p9", Title: "Vaasje"}

	n := Normalize(rec, Lookups{})

	if n.EmbeddingText != "Vaasje" {
		t.Errorf("EmbeddingText = %q, want %q", n.EmbeddingText, "Vaasje")
	}
	if n.Artist != "" {
		t.Errorf("Artist = %q, want empty", n.Artist)
	}
	if n.Dimensions != "" {
		t.Errorf("Dimensions = %q, want empty", n.Dimensions)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hallo <b>wereld</b></p>", "Hallo wereld"},
		{"geen markup", "geen markup"},
		{"spaties   en\n\tregels", "spaties en regels"},
		{"&eacute;&eacute;n &amp; twee", "één & twee"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		desc       string
		categories []string
		want       domain.ProductType
	}{
		{"statue in title", "Bronzen beeld kat", "", nil, domain.TypeStatue},
		{"painting in title", "Schilderij zonsondergang", "", nil, domain.TypePainting},
		{"vase via category", "Fiore groot", "", []string{"Vazen"}, domain.TypeVase},
		{"jewelry in description", "Cadeau", "Zilveren ketting met hanger", nil, domain.TypeJewelry},
		{"title outranks description", "Houten beeld", "past mooi naast een schilderij", nil, domain.TypeStatue},
		{"no signal", "Cadeaubon", "Leuk om te geven", nil, domain.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyType(tt.title, tt.desc, tt.categories)
			if got != tt.want {
				t.Errorf("ClassifyType = %q, want %q", got, tt.want)
			}
		})
	}
}
