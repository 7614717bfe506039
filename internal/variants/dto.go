package variant

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
)

// VariantDTO is the variant payload returned to clients.
type VariantDTO struct {
	ID                 int64     `json:"id"`
	ProductID          int64     `json:"product_id"`
	Title              string    `json:"title"`
	SKU                string    `json:"sku"`
	Price              float64   `json:"price"`
	DisplayPrice       string    `json:"display_price"`
	ComparePrice       *float64  `json:"compare_price,omitempty"`
	InventoryQuantity  int       `json:"inventory_quantity"`
	TrackInventory     bool      `json:"track_inventory"`
	InventoryPolicy    string    `json:"inventory_policy"`
	FulfillmentService string    `json:"fulfillment_service"`
	Option1            string    `json:"option1"`
	Option2            *string   `json:"option2,omitempty"`
	Option3            *string   `json:"option3,omitempty"`
	Weight             *float64  `json:"weight,omitempty"`
	WeightUnit         string    `json:"weight_unit"`
	Barcode            *string   `json:"barcode,omitempty"`
	Images             []string  `json:"images"`
	RequiresShipping   bool      `json:"requires_shipping"`
	Taxable            bool      `json:"taxable"`
	Position           int       `json:"position"`
	IsOnSale           bool      `json:"is_on_sale"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewVariantDTO builds a DTO from the persisted model.
func NewVariantDTO(variant *models.ProductVariant) *VariantDTO {
	return &VariantDTO{
		ID:                 variant.ID,
		ProductID:          variant.ProductID,
		Title:              variant.Title,
		SKU:                variant.SKU,
		Price:              variant.Price,
		DisplayPrice:       "$" + decimal.NewFromFloat(variant.Price).StringFixed(2),
		ComparePrice:       variant.ComparePrice,
		InventoryQuantity:  variant.InventoryQuantity,
		TrackInventory:     variant.TrackInventory,
		InventoryPolicy:    string(variant.InventoryPolicy),
		FulfillmentService: variant.FulfillmentService,
		Option1:            variant.Option1,
		Option2:            variant.Option2,
		Option3:            variant.Option3,
		Weight:             variant.Weight,
		WeightUnit:         string(variant.WeightUnit),
		Barcode:            variant.Barcode,
		Images:             append([]string{}, variant.Images...),
		RequiresShipping:   variant.RequiresShipping,
		Taxable:            variant.Taxable,
		Position:           variant.Position,
		IsOnSale:           variant.IsOnSale(),
		DiscountPercentage: variant.DiscountPercentage(),
		CreatedAt:          variant.CreatedAt,
		UpdatedAt:          variant.UpdatedAt,
	}
}

// NewVariantDTOs maps a slice of models preserving order.
func NewVariantDTOs(variants []models.ProductVariant) []VariantDTO {
	dtos := make([]VariantDTO, len(variants))
	for i := range variants {
		dtos[i] = *NewVariantDTO(&variants[i])
	}
	return dtos
}
