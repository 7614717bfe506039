package controllers

import (
	"net/http"
	"strings"

	"github.com/stockroomhq/catalog-api/api/responses"
	"github.com/stockroomhq/catalog-api/api/validators"
	"github.com/stockroomhq/catalog-api/internal/inventory"
	productsvc "github.com/stockroomhq/catalog-api/internal/products"
	variantsvc "github.com/stockroomhq/catalog-api/internal/variants"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
)

// AdjustProductInventory handles PATCH /api/v1/products/{id}/inventory.
func AdjustProductInventory(svc *inventory.Service[models.Product], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adj, err := decodeAdjustment(r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Adjust(r.Context(), adj)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productsvc.NewProductDTO(product))
	}
}

// AdjustVariantInventory handles PATCH /api/v1/variants/{id}/inventory.
func AdjustVariantInventory(svc *inventory.Service[models.ProductVariant], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adj, err := decodeAdjustment(r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Adjust(r.Context(), adj)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variantsvc.NewVariantDTO(variant))
	}
}

// BulkAdjustProductInventory handles PATCH /api/v1/inventory/products/bulk.
func BulkAdjustProductInventory(svc *inventory.Service[models.Product], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkProductAdjustmentsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adjs, err := toAdjustments(payload.Products)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := svc.BulkAdjust(r.Context(), adjs)
		responses.WriteBulk(w, "Bulk inventory update completed", results)
	}
}

// BulkAdjustVariantInventory handles PATCH /api/v1/inventory/variants/bulk.
func BulkAdjustVariantInventory(svc *inventory.Service[models.ProductVariant], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkVariantAdjustmentsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adjs, err := toAdjustments(payload.Variants)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := svc.BulkAdjust(r.Context(), adjs)
		responses.WriteBulk(w, "Bulk inventory update completed", results)
	}
}

type adjustInventoryRequest struct {
	Quantity  *int   `json:"quantity" validate:"required,gte=0"`
	Operation string `json:"operation" validate:"required,oneof=set increment decrement"`
}

type bulkProductAdjustmentsRequest struct {
	Products []bulkAdjustmentItem `json:"products" validate:"required,min=1,dive"`
}

type bulkVariantAdjustmentsRequest struct {
	Variants []bulkAdjustmentItem `json:"variants" validate:"required,min=1,dive"`
}

type bulkAdjustmentItem struct {
	ID        int64  `json:"id" validate:"required,gt=0"`
	Quantity  *int   `json:"quantity" validate:"required,gte=0"`
	Operation string `json:"operation" validate:"required,oneof=set increment decrement"`
}

func decodeAdjustment(r *http.Request, id int64) (inventory.Adjustment, error) {
	var payload adjustInventoryRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return inventory.Adjustment{}, err
	}
	operation, err := parseOperation(payload.Operation)
	if err != nil {
		return inventory.Adjustment{}, err
	}
	return inventory.Adjustment{
		ID:        id,
		Quantity:  *payload.Quantity,
		Operation: operation,
	}, nil
}

func toAdjustments(items []bulkAdjustmentItem) ([]inventory.Adjustment, error) {
	adjs := make([]inventory.Adjustment, len(items))
	for i, item := range items {
		operation, err := parseOperation(item.Operation)
		if err != nil {
			return nil, err
		}
		adjs[i] = inventory.Adjustment{
			ID:        item.ID,
			Quantity:  *item.Quantity,
			Operation: operation,
		}
	}
	return adjs, nil
}

func parseOperation(value string) (enums.InventoryOperation, error) {
	parsed, err := enums.ParseInventoryOperation(strings.TrimSpace(value))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid operation").
			WithDetails(map[string][]string{"operation": {"must be one of set, increment, decrement"}})
	}
	return parsed, nil
}
