package models

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestProductIsOnSale(t *testing.T) {
	cases := []struct {
		name    string
		price   float64
		compare *float64
		want    bool
	}{
		{name: "no compare price", price: 10, compare: nil, want: false},
		{name: "compare above price", price: 10, compare: floatPtr(15), want: true},
		{name: "compare equals price", price: 10, compare: floatPtr(10), want: false},
		{name: "compare below price", price: 10, compare: floatPtr(5), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: tc.price, ComparePrice: tc.compare}
			if got := p.IsOnSale(); got != tc.want {
				t.Fatalf("IsOnSale() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProductDiscountPercentage(t *testing.T) {
	t.Run("not on sale yields nil", func(t *testing.T) {
		p := Product{Price: 10}
		if p.DiscountPercentage() != nil {
			t.Fatal("expected nil discount when not on sale")
		}
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		p := Product{Price: 66.67, ComparePrice: floatPtr(100)}
		got := p.DiscountPercentage()
		if got == nil {
			t.Fatal("expected discount percentage")
		}
		if *got != 33.33 {
			t.Fatalf("DiscountPercentage() = %v, want 33.33", *got)
		}
	})

	t.Run("clean split", func(t *testing.T) {
		p := Product{Price: 75, ComparePrice: floatPtr(100)}
		got := p.DiscountPercentage()
		if got == nil || *got != 25 {
			t.Fatalf("DiscountPercentage() = %v, want 25", got)
		}
	})
}

func TestProductTotalInventory(t *testing.T) {
	t.Run("no variants uses own counter", func(t *testing.T) {
		p := Product{InventoryQuantity: 7}
		if got := p.TotalInventory(); got != 7 {
			t.Fatalf("TotalInventory() = %d, want 7", got)
		}
	})

	t.Run("variants override own counter", func(t *testing.T) {
		p := Product{
			InventoryQuantity: 99,
			Variants: []ProductVariant{
				{InventoryQuantity: 3},
				{InventoryQuantity: 5},
			},
		}
		if got := p.TotalInventory(); got != 8 {
			t.Fatalf("TotalInventory() = %d, want 8", got)
		}
	})
}

func TestProductCanDecrement(t *testing.T) {
	p := Product{InventoryQuantity: 5}
	if !p.CanDecrement(5) {
		t.Fatal("expected decrement of exact quantity to be allowed")
	}
	if p.CanDecrement(6) {
		t.Fatal("expected over-decrement to be rejected")
	}
}
