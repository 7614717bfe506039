package product

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db/models"
)

// Repository wires product persistence over the shared GORM connection.
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

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDWithVariants loads the product with its variants ordered by
// position.
func (r *Repository) FindByIDWithVariants(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Exists reports whether a product row with the given id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// SKUExists reports whether another product already carries the sku.
// excludeID skips the row being updated.
func (r *Repository) SKUExists(ctx context.Context, sku string, excludeID int64) (bool, error) {
	var count int64
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("sku = ?", sku)
	if excludeID > 0 {
		qb = qb.Where("id <> ?", excludeID)
	}
	if err := qb.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update persists the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID; the variant FK cascades.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// List returns one page of products matching the query plus the total count
// of matching rows. Variants are preloaded so computed totals are correct.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Product, int64, error) {
	qb := applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), query.Filters).
		Session(&gorm.Session{})

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.Product
	err := qb.
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(orderClause(query.Sort)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&rows).
		Error
	return rows, total, err
}

// SetQuantity overwrites the product's inventory counter.
func (r *Repository) SetQuantity(ctx context.Context, id int64, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("inventory_quantity", qty).
		Error
}

// AddQuantity increments the product's inventory counter.
func (r *Repository) AddQuantity(ctx context.Context, id int64, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("inventory_quantity", gorm.Expr("inventory_quantity + ?", qty)).
		Error
}

// SubtractQuantity decrements the counter only when enough stock is on hand.
// The guard lives in the WHERE clause so check and write are one statement;
// a zero RowsAffected on an existing row means insufficient inventory.
func (r *Repository) SubtractQuantity(ctx context.Context, id int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND inventory_quantity >= ?", id, qty).
		Update("inventory_quantity", gorm.Expr("inventory_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
