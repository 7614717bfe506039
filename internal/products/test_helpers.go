package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:              "Test Product",
		SKU:               fmt.Sprintf("SKU-%s", uuid.NewString()),
		Price:             19.99,
		InventoryQuantity: 10,
		TrackInventory:    true,
		Status:            enums.ProductStatusActive,
		WeightUnit:        enums.WeightUnitKilogram,
		RequiresShipping:  true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
