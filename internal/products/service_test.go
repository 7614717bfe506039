package product

import (
	"testing"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
)

func stringPtr(v string) *string { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int { return &v }

func TestApplyUpdateTrimsAndCopies(t *testing.T) {
	tags := []string{"summer", "sale"}
	status := enums.ProductStatusArchived

	product := &models.Product{
		Name:   "old name",
		Status: enums.ProductStatusActive,
	}

	applyUpdate(product, UpdateProductInput{
		Name:              stringPtr("  New Name "),
		Price:             floatPtr(12.5),
		InventoryQuantity: intPtr(4),
		TrackInventory:    boolPtr(false),
		Status:            &status,
		Tags:              &tags,
	})

	if product.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
	if product.Price != 12.5 {
		t.Fatalf("Price = %v, want 12.5", product.Price)
	}
	if product.InventoryQuantity != 4 {
		t.Fatalf("InventoryQuantity = %d, want 4", product.InventoryQuantity)
	}
	if product.TrackInventory {
		t.Fatal("expected TrackInventory to be disabled")
	}
	if product.Status != enums.ProductStatusArchived {
		t.Fatalf("Status = %s, want archived", product.Status)
	}
	if len(product.Tags) != 2 || product.Tags[0] != "summer" {
		t.Fatalf("Tags = %v, want copy of input", product.Tags)
	}

	// The slice must be copied, not aliased.
	tags[0] = "mutated"
	if product.Tags[0] != "summer" {
		t.Fatal("expected tags slice to be copied")
	}
}

func TestApplyUpdateSkipsNilFields(t *testing.T) {
	product := &models.Product{
		Name:  "keep",
		Price: 9.99,
	}
	applyUpdate(product, UpdateProductInput{})
	if product.Name != "keep" || product.Price != 9.99 {
		t.Fatalf("expected untouched product, got %+v", product)
	}
}

func TestSkuTakenError(t *testing.T) {
	err := skuTakenError()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string][]string)
	if !ok {
		t.Fatalf("expected field details map, got %T", typed.Details())
	}
	if len(details["sku"]) != 1 {
		t.Fatalf("expected one sku message, got %v", details["sku"])
	}
}
