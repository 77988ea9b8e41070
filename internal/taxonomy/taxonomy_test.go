package taxonomy

import (
	"reflect"
	"testing"
)

func TestCategoryNames(t *testing.T) {
	c := NewCatalog(map[string]string{"c1": "Beelden", "c2": "Liefde", "c3": ""})

	got := c.CategoryNames([]string{"c2", "c1", "c3", "onbekend"})
	want := []string{"Liefde", "Beelden"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryNames = %v, want %v", got, want)
	}
}

func TestThemesSorted(t *testing.T) {
	c := NewCatalog(map[string]string{"c1": "Liefde", "c2": "Beelden"})

	want := []string{"Beelden", "Liefde"}
	if !reflect.DeepEqual(c.Themes(), want) {
		t.Errorf("Themes = %v, want %v", c.Themes(), want)
	}
}

func TestTypesNonEmpty(t *testing.T) {
	c := NewCatalog(nil)
	if len(c.Types()) == 0 {
		t.Fatal("Types returned empty set")
	}
	for _, typ := range c.Types() {
		if typ == "unknown" {
			t.Error("unknown must not be advertised as an available type")
		}
	}
}
