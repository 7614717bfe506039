package controllers

import (
	"net/http"
	"strings"

	"github.com/stockroomhq/catalog-api/api/responses"
	"github.com/stockroomhq/catalog-api/api/validators"
	variantsvc "github.com/stockroomhq/catalog-api/internal/variants"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
)

// ListVariants handles GET /api/v1/variants.
func ListVariants(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseVariantListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants, meta, err := svc.ListVariants(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, variants, meta)
	}
}

// ListProductVariants handles GET /api/v1/products/{productId}/variants.
func ListProductVariants(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := idParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants, err := svc.ListByProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variants)
	}
}

// CreateVariant handles POST /api/v1/variants.
func CreateVariant(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.CreateVariant(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// GetVariant handles GET /api/v1/variants/{id}.
func GetVariant(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.GetVariant(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

// UpdateVariant handles PUT/PATCH /api/v1/variants/{id}.
func UpdateVariant(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.UpdateVariant(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

// DeleteVariant handles DELETE /api/v1/variants/{id}.
func DeleteVariant(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVariant(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "Variant deleted")
	}
}

// UpdateVariantPositions handles PATCH /api/v1/variants/positions.
func UpdateVariantPositions(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updatePositionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updates := make([]variantsvc.PositionUpdate, len(payload.Variants))
		for i, item := range payload.Variants {
			updates[i] = variantsvc.PositionUpdate{ID: item.ID, Position: item.Position}
		}

		results := svc.UpdatePositions(r.Context(), updates)
		responses.WriteBulk(w, "Positions updated", results)
	}
}

type createVariantRequest struct {
	ProductID          int64    `json:"product_id" validate:"required,gt=0"`
	Title              string   `json:"title" validate:"required"`
	SKU                string   `json:"sku" validate:"required,sku"`
	Price              *float64 `json:"price" validate:"required,gte=0"`
	ComparePrice       *float64 `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	InventoryQuantity  *int     `json:"inventory_quantity,omitempty" validate:"omitempty,gte=0"`
	TrackInventory     *bool    `json:"track_inventory,omitempty"`
	InventoryPolicy    *string  `json:"inventory_policy,omitempty"`
	FulfillmentService *string  `json:"fulfillment_service,omitempty"`
	Option1            string   `json:"option1" validate:"required"`
	Option2            *string  `json:"option2,omitempty"`
	Option3            *string  `json:"option3,omitempty"`
	Weight             *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	WeightUnit         *string  `json:"weight_unit,omitempty"`
	Barcode            *string  `json:"barcode,omitempty"`
	Images             []string `json:"images,omitempty" validate:"omitempty,max=5"`
	RequiresShipping   *bool    `json:"requires_shipping,omitempty"`
	Taxable            *bool    `json:"taxable,omitempty"`
	Position           *int     `json:"position,omitempty" validate:"omitempty,gte=1"`
}

func (r createVariantRequest) toInput() (variantsvc.CreateVariantInput, error) {
	policy, err := parseOptionalPolicy(r.InventoryPolicy)
	if err != nil {
		return variantsvc.CreateVariantInput{}, err
	}
	weightUnit, err := parseOptionalWeightUnit(r.WeightUnit)
	if err != nil {
		return variantsvc.CreateVariantInput{}, err
	}

	input := variantsvc.CreateVariantInput{
		ProductID:          r.ProductID,
		Title:              strings.TrimSpace(r.Title),
		SKU:                strings.TrimSpace(r.SKU),
		Price:              *r.Price,
		ComparePrice:       r.ComparePrice,
		TrackInventory:     r.TrackInventory,
		InventoryPolicy:    policy,
		FulfillmentService: r.FulfillmentService,
		Option1:            strings.TrimSpace(r.Option1),
		Option2:            r.Option2,
		Option3:            r.Option3,
		Weight:             r.Weight,
		WeightUnit:         weightUnit,
		Barcode:            r.Barcode,
		Images:             r.Images,
		RequiresShipping:   r.RequiresShipping,
		Taxable:            r.Taxable,
		Position:           r.Position,
	}
	if r.InventoryQuantity != nil {
		input.InventoryQuantity = *r.InventoryQuantity
	}
	return input, nil
}

type updateVariantRequest struct {
	Title              *string   `json:"title,omitempty"`
	SKU                *string   `json:"sku,omitempty" validate:"omitempty,sku"`
	Price              *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	ComparePrice       *float64  `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	InventoryQuantity  *int      `json:"inventory_quantity,omitempty" validate:"omitempty,gte=0"`
	TrackInventory     *bool     `json:"track_inventory,omitempty"`
	InventoryPolicy    *string   `json:"inventory_policy,omitempty"`
	FulfillmentService *string   `json:"fulfillment_service,omitempty"`
	Option1            *string   `json:"option1,omitempty"`
	Option2            *string   `json:"option2,omitempty"`
	Option3            *string   `json:"option3,omitempty"`
	Weight             *float64  `json:"weight,omitempty" validate:"omitempty,gte=0"`
	WeightUnit         *string   `json:"weight_unit,omitempty"`
	Barcode            *string   `json:"barcode,omitempty"`
	Images             *[]string `json:"images,omitempty" validate:"omitempty,max=5"`
	RequiresShipping   *bool     `json:"requires_shipping,omitempty"`
	Taxable            *bool     `json:"taxable,omitempty"`
	Position           *int      `json:"position,omitempty" validate:"omitempty,gte=1"`
}

func (r updateVariantRequest) toInput() (variantsvc.UpdateVariantInput, error) {
	policy, err := parseOptionalPolicy(r.InventoryPolicy)
	if err != nil {
		return variantsvc.UpdateVariantInput{}, err
	}
	weightUnit, err := parseOptionalWeightUnit(r.WeightUnit)
	if err != nil {
		return variantsvc.UpdateVariantInput{}, err
	}

	return variantsvc.UpdateVariantInput{
		Title:              r.Title,
		SKU:                r.SKU,
		Price:              r.Price,
		ComparePrice:       r.ComparePrice,
		InventoryQuantity:  r.InventoryQuantity,
		TrackInventory:     r.TrackInventory,
		InventoryPolicy:    policy,
		FulfillmentService: r.FulfillmentService,
		Option1:            r.Option1,
		Option2:            r.Option2,
		Option3:            r.Option3,
		Weight:             r.Weight,
		WeightUnit:         weightUnit,
		Barcode:            r.Barcode,
		Images:             r.Images,
		RequiresShipping:   r.RequiresShipping,
		Taxable:            r.Taxable,
		Position:           r.Position,
	}, nil
}

type updatePositionsRequest struct {
	Variants []positionItemRequest `json:"variants" validate:"required,min=1,dive"`
}

type positionItemRequest struct {
	ID       int64 `json:"id" validate:"required,gt=0"`
	Position int   `json:"position" validate:"required,gte=1"`
}

func parseVariantListQuery(r *http.Request) (variantsvc.ListQuery, error) {
	productID, err := validators.ParseQueryInt64(r, "product_id")
	if err != nil {
		return variantsvc.ListQuery{}, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return variantsvc.ListQuery{}, err
	}
	params, err := parsePaginationParams(r)
	if err != nil {
		return variantsvc.ListQuery{}, err
	}

	return variantsvc.ListQuery{
		Filters: variantsvc.ListFilters{
			ProductID: productID,
			Option1:   validators.QueryString(r, "option1"),
			Option2:   validators.QueryString(r, "option2"),
			Option3:   validators.QueryString(r, "option3"),
			InStock:   inStock,
			Search:    r.URL.Query().Get("search"),
		},
		Sort: variantsvc.Sort{
			By:    r.URL.Query().Get("sort_by"),
			Order: r.URL.Query().Get("sort_order"),
		},
		Pagination: params,
	}, nil
}

func parseOptionalPolicy(value *string) (*enums.InventoryPolicy, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := enums.ParseInventoryPolicy(strings.TrimSpace(*value))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory policy").
			WithDetails(map[string][]string{"inventory_policy": {"must be one of deny, continue"}})
	}
	return &parsed, nil
}
