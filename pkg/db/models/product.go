package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/catalog-api/pkg/enums"
)

// Product represents a catalog listing. Variants, when present, carry the
// sellable configurations; the product row keeps its own inventory counter
// for variant-less listings.
type Product struct {
	ID                int64               `gorm:"column:id;primaryKey;autoIncrement"`
	Name              string              `gorm:"column:name;not null"`
	Description       *string             `gorm:"column:description"`
	SKU               string              `gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	Price             float64             `gorm:"column:price;type:numeric(12,2);not null"`
	ComparePrice      *float64            `gorm:"column:compare_price;type:numeric(12,2)"`
	InventoryQuantity int                 `gorm:"column:inventory_quantity;not null"`
	TrackInventory    bool                `gorm:"column:track_inventory;not null"`
	Status            enums.ProductStatus `gorm:"column:status;not null"`
	Vendor            *string             `gorm:"column:vendor"`
	ProductType       *string             `gorm:"column:product_type"`
	Tags              pq.StringArray      `gorm:"column:tags;type:text[]"`
	Images            pq.StringArray      `gorm:"column:images;type:text[]"`
	Weight            *float64            `gorm:"column:weight;type:numeric(10,3)"`
	WeightUnit        enums.WeightUnit    `gorm:"column:weight_unit;not null"`
	RequiresShipping  bool                `gorm:"column:requires_shipping;not null"`
	SEOTitle          *string             `gorm:"column:seo_title"`
	SEODescription    *string             `gorm:"column:seo_description"`
	SEOKeywords       pq.StringArray      `gorm:"column:seo_keywords;type:text[]"`
	Variants          []ProductVariant    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsOnSale reports whether the compare-at price is set and strictly above
// the selling price.
func (p *Product) IsOnSale() bool {
	return p.ComparePrice != nil && *p.ComparePrice > p.Price
}

// DiscountPercentage returns (compare_price - price) / compare_price * 100
// rounded to two decimals, or nil when the product is not on sale.
func (p *Product) DiscountPercentage() *float64 {
	if !p.IsOnSale() {
		return nil
	}
	compare := decimal.NewFromFloat(*p.ComparePrice)
	price := decimal.NewFromFloat(p.Price)
	pct, _ := compare.Sub(price).
		Div(compare).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return &pct
}

// TotalInventory sums the variant quantities when variants exist, otherwise
// it reports the product's own counter.
func (p *Product) TotalInventory() int {
	if len(p.Variants) == 0 {
		return p.InventoryQuantity
	}
	total := 0
	for _, variant := range p.Variants {
		total += variant.InventoryQuantity
	}
	return total
}

// CanDecrement reports whether the product's own inventory covers qty.
func (p *Product) CanDecrement(qty int) bool {
	return p.InventoryQuantity >= qty
}
