package variant

import (
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/pagination"
)

// ListFilters narrows the variant listing. Option filters are applied as
// literal equality.
type ListFilters struct {
	ProductID *int64
	Option1   *string
	Option2   *string
	Option3   *string
	InStock   *bool
	Search    string
}

// Sort holds the requested ordering for a list call.
type Sort struct {
	By    string
	Order string
}

// ListQuery bundles everything a variant list call needs.
type ListQuery struct {
	Filters    ListFilters
	Sort       Sort
	Pagination pagination.Params
}

// sortableColumns is the allow-list of variant sort fields. Anything not in
// the map falls back to the default ordering rather than reaching the query.
var sortableColumns = map[string]string{
	"position":           "position",
	"created_at":         "created_at",
	"updated_at":         "updated_at",
	"title":              "title",
	"price":              "price",
	"inventory_quantity": "inventory_quantity",
	"sku":                "sku",
}

const (
	defaultSortColumn = "position"
	defaultSortOrder  = "ASC"
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
	if filters.ProductID != nil {
		qb = qb.Where("product_id = ?", *filters.ProductID)
	}
	if filters.Option1 != nil {
		qb = qb.Where("option1 = ?", *filters.Option1)
	}
	if filters.Option2 != nil {
		qb = qb.Where("option2 = ?", *filters.Option2)
	}
	if filters.Option3 != nil {
		qb = qb.Where("option3 = ?", *filters.Option3)
	}
	if filters.InStock != nil {
		if *filters.InStock {
			qb = qb.Where("inventory_quantity > 0")
		} else {
			qb = qb.Where("inventory_quantity <= 0")
		}
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(title) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(barcode) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	return qb
}
