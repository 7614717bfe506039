package variant

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:             "Variant Parent",
		SKU:              fmt.Sprintf("SKU-%s", uuid.NewString()),
		Price:            29.99,
		TrackInventory:   true,
		Status:           enums.ProductStatusActive,
		WeightUnit:       enums.WeightUnitKilogram,
		RequiresShipping: true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestVariant(t *testing.T, tx *gorm.DB, productID int64, mutate func(*models.ProductVariant)) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:          productID,
		Title:              "Test Variant",
		SKU:                fmt.Sprintf("VAR-%s", uuid.NewString()),
		Price:              9.99,
		InventoryQuantity:  10,
		TrackInventory:     true,
		InventoryPolicy:    enums.InventoryPolicyDeny,
		FulfillmentService: "manual",
		Option1:            "Default",
		WeightUnit:         enums.WeightUnitKilogram,
		RequiresShipping:   true,
		Taxable:            true,
		Position:           1,
	}
	if mutate != nil {
		mutate(variant)
	}
	if err := tx.Create(variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	return variant
}
