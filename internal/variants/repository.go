package variant

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
)

// Repository wires variant persistence over the shared GORM connection.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the variant row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// SKUExists reports whether another variant already carries the sku.
// excludeID skips the row being updated.
func (r *Repository) SKUExists(ctx context.Context, sku string, excludeID int64) (bool, error) {
	var count int64
	qb := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("sku = ?", sku)
	if excludeID > 0 {
		qb = qb.Where("id <> ?", excludeID)
	}
	if err := qb.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new variant row.
func (r *Repository) Create(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// Update persists the full variant row.
func (r *Repository) Update(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// Delete removes a variant by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductVariant{}).Error
}

// List returns one page of variants matching the query plus the total count
// of matching rows.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.ProductVariant, int64, error) {
	qb := applyFilters(r.db.WithContext(ctx).Model(&models.ProductVariant{}), query.Filters).
		Session(&gorm.Session{})

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.ProductVariant
	err := qb.
		Order(orderClause(query.Sort)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&rows).
		Error
	return rows, total, err
}

// ListByProduct returns all variants of a product ordered by position.
func (r *Repository) ListByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	var rows []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpdatePosition overwrites the display position of a single variant. The
// returned bool reports whether a row was touched.
func (r *Repository) UpdatePosition(ctx context.Context, id int64, position int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", id).
		Update("position", position)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetQuantity overwrites the variant's inventory counter.
func (r *Repository) SetQuantity(ctx context.Context, id int64, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", id).
		Update("inventory_quantity", qty).
		Error
}

// AddQuantity increments the counter for tracked variants. Untracked rows
// are left untouched.
func (r *Repository) AddQuantity(ctx context.Context, id int64, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND track_inventory", id).
		Update("inventory_quantity", gorm.Expr("inventory_quantity + ?", qty)).
		Error
}

// SubtractQuantity decrements the counter under the fulfillment rules: an
// untracked variant is a successful no-op, the continue policy subtracts
// clamped at zero, and the deny policy subtracts only when enough stock is
// on hand. Guard and write share one statement; a zero RowsAffected on an
// existing row means insufficient inventory.
func (r *Repository) SubtractQuantity(ctx context.Context, id int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where(
			"id = ? AND (NOT track_inventory OR inventory_policy = ? OR inventory_quantity >= ?)",
			id, enums.InventoryPolicyContinue, qty,
		).
		Update("inventory_quantity", gorm.Expr(
			"CASE"+
				" WHEN NOT track_inventory THEN inventory_quantity"+
				" WHEN inventory_quantity >= ? THEN inventory_quantity - ?"+
				" ELSE 0 END",
			qty, qty,
		))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
