package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/catalog-api/pkg/enums"
)

// ProductVariant is a purchasable configuration of a product with its own
// sku, price, inventory, and display position.
type ProductVariant struct {
	ID                 int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID          int64                 `gorm:"column:product_id;not null;index:idx_variants_product_position"`
	Title              string                `gorm:"column:title;not null"`
	SKU                string                `gorm:"column:sku;not null;uniqueIndex:idx_variants_sku"`
	Price              float64               `gorm:"column:price;type:numeric(12,2);not null"`
	ComparePrice       *float64              `gorm:"column:compare_price;type:numeric(12,2)"`
	InventoryQuantity  int                   `gorm:"column:inventory_quantity;not null"`
	TrackInventory     bool                  `gorm:"column:track_inventory;not null"`
	InventoryPolicy    enums.InventoryPolicy `gorm:"column:inventory_policy;not null"`
	FulfillmentService string                `gorm:"column:fulfillment_service;not null"`
	Option1            string                `gorm:"column:option1;not null"`
	Option2            *string               `gorm:"column:option2"`
	Option3            *string               `gorm:"column:option3"`
	Weight             *float64              `gorm:"column:weight;type:numeric(10,3)"`
	WeightUnit         enums.WeightUnit      `gorm:"column:weight_unit;not null"`
	Barcode            *string               `gorm:"column:barcode"`
	Images             pq.StringArray        `gorm:"column:images;type:text[]"`
	RequiresShipping   bool                  `gorm:"column:requires_shipping;not null"`
	Taxable            bool                  `gorm:"column:taxable;not null"`
	Position           int                   `gorm:"column:position;not null;index:idx_variants_product_position"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// CanFulfill reports whether the variant may satisfy an order of qty units.
// Untracked inventory and the continue policy always fulfill; the deny
// policy requires sufficient quantity on hand.
func (v *ProductVariant) CanFulfill(qty int) bool {
	if !v.TrackInventory {
		return true
	}
	if v.InventoryPolicy == enums.InventoryPolicyContinue {
		return true
	}
	return v.InventoryQuantity >= qty
}

// IsOnSale reports whether the compare-at price is set and strictly above
// the selling price.
func (v *ProductVariant) IsOnSale() bool {
	return v.ComparePrice != nil && *v.ComparePrice > v.Price
}

// DiscountPercentage returns the sale discount rounded to two decimals, or
// nil when the variant is not on sale.
func (v *ProductVariant) DiscountPercentage() *float64 {
	if !v.IsOnSale() {
		return nil
	}
	compare := decimal.NewFromFloat(*v.ComparePrice)
	price := decimal.NewFromFloat(v.Price)
	pct, _ := compare.Sub(price).
		Div(compare).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return &pct
}
