package domain

import "testing"

func TestSaleInfo(t *testing.T) {
	old := func(v float64) *float64 { return &v }

	tests := []struct {
		name         string
		price        float64
		oldPrice     *float64
		wantOnSale   bool
		wantDiscount int
	}{
		{"thirty five percent off", 65.00, old(100.00), true, 35},
		{"no old price", 65.00, nil, false, 0},
		{"old price equals price", 65.00, old(65.00), false, 0},
		{"old price below price", 65.00, old(60.00), false, 0},
		{"rounds to nearest percent", 66.50, old(100.00), true, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, OldPrice: tt.oldPrice}
			onSale, discount := p.SaleInfo()
			if onSale != tt.wantOnSale {
				t.Errorf("onSale = %v, want %v", onSale, tt.wantOnSale)
			}
			if discount != tt.wantDiscount {
				t.Errorf("discount = %d, want %d", discount, tt.wantDiscount)
			}
		})
	}
}

func TestIsPopular(t *testing.T) {
	if (&Product{StockSold: 49}).IsPopular() {
		t.Error("49 sold should not be popular")
	}
	if !(&Product{StockSold: 50}).IsPopular() {
		t.Error("50 sold should be popular")
	}
}

func TestIsScarce(t *testing.T) {
	tests := []struct {
		stock int
		want  bool
	}{
		{0, false}, // exhausted is unavailable, not scarce
		{1, true},
		{5, true},
		{6, false},
	}
	for _, tt := range tests {
		p := Product{Stock: tt.stock}
		if got := p.IsScarce(); got != tt.want {
			t.Errorf("stock=%d: IsScarce() = %v, want %v", tt.stock, got, tt.want)
		}
	}
}
