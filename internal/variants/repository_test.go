package variant

import (
	"context"
	"io"
	"testing"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	"github.com/stockroomhq/catalog-api/pkg/logger"
)

type stubProductChecker struct{ exists bool }

func (c stubProductChecker) Exists(context.Context, int64) (bool, error) {
	return c.exists, nil
}

func TestRepositorySubtractQuantityDenyPolicy(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	variant := mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.InventoryQuantity = 5
	})

	applied, err := repo.SubtractQuantity(ctx, variant.ID, 3)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if !applied {
		t.Fatal("expected subtract of 3 from 5 to apply")
	}

	applied, err = repo.SubtractQuantity(ctx, variant.ID, 3)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if applied {
		t.Fatal("expected subtract of 3 from 2 to be rejected under deny policy")
	}

	reloaded, err := repo.FindByID(ctx, variant.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InventoryQuantity != 2 {
		t.Fatalf("expected quantity 2, got %d", reloaded.InventoryQuantity)
	}
}

func TestRepositorySubtractQuantityContinuePolicyClampsAtZero(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	variant := mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.InventoryQuantity = 2
		v.InventoryPolicy = enums.InventoryPolicyContinue
	})

	applied, err := repo.SubtractQuantity(ctx, variant.ID, 5)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if !applied {
		t.Fatal("expected continue-policy oversell to apply")
	}

	reloaded, err := repo.FindByID(ctx, variant.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InventoryQuantity != 0 {
		t.Fatalf("expected quantity clamped to 0, got %d", reloaded.InventoryQuantity)
	}
}

func TestRepositorySubtractQuantityUntrackedNoOp(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	variant := mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.InventoryQuantity = 1
		v.TrackInventory = false
	})

	applied, err := repo.SubtractQuantity(ctx, variant.ID, 100)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if !applied {
		t.Fatal("expected untracked subtract to report success")
	}

	reloaded, err := repo.FindByID(ctx, variant.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InventoryQuantity != 1 {
		t.Fatalf("expected untracked quantity untouched, got %d", reloaded.InventoryQuantity)
	}
}

func TestRepositoryAddQuantitySkipsUntracked(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	tracked := mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.InventoryQuantity = 3
	})
	untracked := mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.InventoryQuantity = 3
		v.TrackInventory = false
	})

	if err := repo.AddQuantity(ctx, tracked.ID, 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddQuantity(ctx, untracked.ID, 4); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, tracked.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InventoryQuantity != 7 {
		t.Fatalf("expected tracked quantity 7, got %d", reloaded.InventoryQuantity)
	}

	reloaded, err = repo.FindByID(ctx, untracked.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InventoryQuantity != 3 {
		t.Fatalf("expected untracked quantity untouched, got %d", reloaded.InventoryQuantity)
	}
}

func TestRepositoryUpdatePosition(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	variant := mustCreateTestVariant(t, db, product.ID, nil)

	touched, err := repo.UpdatePosition(ctx, variant.ID, 7)
	if err != nil {
		t.Fatalf("update position: %v", err)
	}
	if !touched {
		t.Fatal("expected existing variant position update to touch a row")
	}

	touched, err = repo.UpdatePosition(ctx, variant.ID+100000, 2)
	if err != nil {
		t.Fatalf("update position: %v", err)
	}
	if touched {
		t.Fatal("expected missing variant position update to touch nothing")
	}

	reloaded, err := repo.FindByID(ctx, variant.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Position != 7 {
		t.Fatalf("expected position 7, got %d", reloaded.Position)
	}
}

func TestUpdatePositionsPartialFailure(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, stubProductChecker{exists: true}, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	product := mustCreateTestProduct(t, db)
	first := mustCreateTestVariant(t, db, product.ID, nil)
	second := mustCreateTestVariant(t, db, product.ID, nil)

	results := svc.UpdatePositions(ctx, []PositionUpdate{
		{ID: first.ID, Position: 2},
		{ID: second.ID + 100000, Position: 1},
		{ID: second.ID, Position: 1},
	})

	if results.Successful != 2 || results.Failed != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if len(results.Errors) != 1 {
		t.Fatalf("expected one error, got %v", results.Errors)
	}

	reloaded, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Position != 2 {
		t.Fatalf("expected position 2, got %d", reloaded.Position)
	}
}

func TestRepositoryListByProductOrdersByPosition(t *testing.T) {
	db := setupVariantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.Title = "Second"
		v.Position = 2
	})
	mustCreateTestVariant(t, db, product.ID, func(v *models.ProductVariant) {
		v.Title = "First"
		v.Position = 1
	})

	rows, err := repo.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(rows))
	}
	if rows[0].Title != "First" || rows[1].Title != "Second" {
		t.Fatalf("unexpected order: %q, %q", rows[0].Title, rows[1].Title)
	}
}
