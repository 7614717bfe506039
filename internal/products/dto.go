package product

import (
	"time"

	"github.com/shopspring/decimal"

	variant "github.com/stockroomhq/catalog-api/internal/variants"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
)

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID                 int64                `json:"id"`
	Name               string               `json:"name"`
	Description        *string              `json:"description,omitempty"`
	SKU                string               `json:"sku"`
	Price              float64              `json:"price"`
	DisplayPrice       string               `json:"display_price"`
	ComparePrice       *float64             `json:"compare_price,omitempty"`
	InventoryQuantity  int                  `json:"inventory_quantity"`
	TrackInventory     bool                 `json:"track_inventory"`
	Status             string               `json:"status"`
	Vendor             *string              `json:"vendor,omitempty"`
	ProductType        *string              `json:"product_type,omitempty"`
	Tags               []string             `json:"tags"`
	Images             []string             `json:"images"`
	Weight             *float64             `json:"weight,omitempty"`
	WeightUnit         string               `json:"weight_unit"`
	RequiresShipping   bool                 `json:"requires_shipping"`
	SEO                *SEODTO              `json:"seo,omitempty"`
	IsOnSale           bool                 `json:"is_on_sale"`
	DiscountPercentage *float64             `json:"discount_percentage,omitempty"`
	TotalInventory     int                  `json:"total_inventory"`
	Variants           []variant.VariantDTO `json:"variants,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// SEODTO groups the optional search metadata fields.
type SEODTO struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model. Variants are mapped
// when preloaded.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		SKU:                product.SKU,
		Price:              product.Price,
		DisplayPrice:       "$" + decimal.NewFromFloat(product.Price).StringFixed(2),
		ComparePrice:       product.ComparePrice,
		InventoryQuantity:  product.InventoryQuantity,
		TrackInventory:     product.TrackInventory,
		Status:             string(product.Status),
		Vendor:             product.Vendor,
		ProductType:        product.ProductType,
		Tags:               append([]string{}, product.Tags...),
		Images:             append([]string{}, product.Images...),
		Weight:             product.Weight,
		WeightUnit:         string(product.WeightUnit),
		RequiresShipping:   product.RequiresShipping,
		IsOnSale:           product.IsOnSale(),
		DiscountPercentage: product.DiscountPercentage(),
		TotalInventory:     product.TotalInventory(),
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}

	if product.SEOTitle != nil || product.SEODescription != nil || len(product.SEOKeywords) > 0 {
		dto.SEO = &SEODTO{
			Title:       product.SEOTitle,
			Description: product.SEODescription,
			Keywords:    append([]string{}, product.SEOKeywords...),
		}
	}

	if len(product.Variants) > 0 {
		dto.Variants = variant.NewVariantDTOs(product.Variants)
	}

	return dto
}

// NewProductDTOs maps a slice of models preserving order.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *NewProductDTO(&products[i])
	}
	return dtos
}
