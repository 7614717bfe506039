package product

import (
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/enums"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
)

// ListFilters narrows the product listing. Exact-match filters are applied
// as literal equality, so an unrecognized status string simply matches zero
// rows instead of failing validation.
type ListFilters struct {
	Status      *string
	Vendor      *string
	ProductType *string
	InStock     *bool
	Search      string
}

// Sort holds the requested ordering for a list call.
type Sort struct {
	By    string
	Order string
}

// ListQuery bundles everything a product list call needs.
type ListQuery struct {
	Filters    ListFilters
	Sort       Sort
	Pagination pagination.Params
}

// sortableColumns is the allow-list of product sort fields. Anything not in
// the map falls back to the default ordering rather than reaching the query.
var sortableColumns = map[string]string{
	"created_at":         "created_at",
	"updated_at":         "updated_at",
	"name":               "name",
	"price":              "price",
	"inventory_quantity": "inventory_quantity",
	"status":             "status",
	"sku":                "sku",
}

const (
	defaultSortColumn = "created_at"
	defaultSortOrder  = "DESC"
)

func orderClause(sort Sort) string {
	column, ok := sortableColumns[sort.By]
	if !ok {
		return defaultSortColumn + " " + defaultSortOrder
	}
	direction := defaultSortOrder
	switch strings.ToLower(sort.Order) {
	case "asc":
		direction = "ASC"
	case "desc":
		direction = "DESC"
	}
	return column + " " + direction
}

func applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Status != nil {
		// status is a db enum; an unrecognized value would fail the cast,
		// so it is turned into an empty match instead.
		if enums.ProductStatus(*filters.Status).IsValid() {
			qb = qb.Where("status = ?", *filters.Status)
		} else {
			qb = qb.Where("1 = 0")
		}
	}
	if filters.Vendor != nil {
		qb = qb.Where("vendor = ?", *filters.Vendor)
	}
	if filters.ProductType != nil {
		qb = qb.Where("product_type = ?", *filters.ProductType)
	}
	if filters.InStock != nil {
		// Checks the product's own counter, not the variant aggregate.
		if *filters.InStock {
			qb = qb.Where("inventory_quantity > 0")
		} else {
			qb = qb.Where("inventory_quantity <= 0")
		}
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	return qb
}
