package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/catalog-api/api/responses"
	"github.com/stockroomhq/catalog-api/api/validators"
	productsvc "github.com/stockroomhq/catalog-api/internal/products"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
)

// ListProducts handles GET /api/v1/products.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, meta, err := svc.ListProducts(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, products, meta)
	}
}

// CreateProduct handles POST /api/v1/products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct handles GET /api/v1/products/{id}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// UpdateProduct handles PUT/PATCH /api/v1/products/{id}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "Product deleted")
	}
}

type createProductRequest struct {
	Name              string      `json:"name" validate:"required"`
	Description       *string     `json:"description,omitempty"`
	SKU               string      `json:"sku" validate:"required,sku"`
	Price             *float64    `json:"price" validate:"required,gte=0"`
	ComparePrice      *float64    `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	InventoryQuantity *int        `json:"inventory_quantity,omitempty" validate:"omitempty,gte=0"`
	TrackInventory    *bool       `json:"track_inventory,omitempty"`
	Status            *string     `json:"status,omitempty"`
	Vendor            *string     `json:"vendor,omitempty"`
	ProductType       *string     `json:"product_type,omitempty"`
	Tags              []string    `json:"tags,omitempty" validate:"omitempty,max=20,unique"`
	Images            []string    `json:"images,omitempty" validate:"omitempty,max=10"`
	Weight            *float64    `json:"weight,omitempty" validate:"omitempty,gte=0"`
	WeightUnit        *string     `json:"weight_unit,omitempty"`
	RequiresShipping  *bool       `json:"requires_shipping,omitempty"`
	SEO               *seoRequest `json:"seo,omitempty"`
}

type seoRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	status, err := parseOptionalStatus(r.Status)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}
	weightUnit, err := parseOptionalWeightUnit(r.WeightUnit)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}

	input := productsvc.CreateProductInput{
		Name:             strings.TrimSpace(r.Name),
		Description:      r.Description,
		SKU:              strings.TrimSpace(r.SKU),
		Price:            *r.Price,
		ComparePrice:     r.ComparePrice,
		TrackInventory:   r.TrackInventory,
		Status:           status,
		Vendor:           r.Vendor,
		ProductType:      r.ProductType,
		Tags:             r.Tags,
		Images:           r.Images,
		Weight:           r.Weight,
		WeightUnit:       weightUnit,
		RequiresShipping: r.RequiresShipping,
	}
	if r.InventoryQuantity != nil {
		input.InventoryQuantity = *r.InventoryQuantity
	}
	if r.SEO != nil {
		input.SEOTitle = r.SEO.Title
		input.SEODescription = r.SEO.Description
		input.SEOKeywords = r.SEO.Keywords
	}
	return input, nil
}

type updateProductRequest struct {
	Name              *string     `json:"name,omitempty"`
	Description       *string     `json:"description,omitempty"`
	SKU               *string     `json:"sku,omitempty" validate:"omitempty,sku"`
	Price             *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	ComparePrice      *float64    `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	InventoryQuantity *int        `json:"inventory_quantity,omitempty" validate:"omitempty,gte=0"`
	TrackInventory    *bool       `json:"track_inventory,omitempty"`
	Status            *string     `json:"status,omitempty"`
	Vendor            *string     `json:"vendor,omitempty"`
	ProductType       *string     `json:"product_type,omitempty"`
	Tags              *[]string   `json:"tags,omitempty" validate:"omitempty,max=20,unique"`
	Images            *[]string   `json:"images,omitempty" validate:"omitempty,max=10"`
	Weight            *float64    `json:"weight,omitempty" validate:"omitempty,gte=0"`
	WeightUnit        *string     `json:"weight_unit,omitempty"`
	RequiresShipping  *bool       `json:"requires_shipping,omitempty"`
	SEO               *seoRequest `json:"seo,omitempty"`
}

func (r updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	status, err := parseOptionalStatus(r.Status)
	if err != nil {
		return productsvc.UpdateProductInput{}, err
	}
	weightUnit, err := parseOptionalWeightUnit(r.WeightUnit)
	if err != nil {
		return productsvc.UpdateProductInput{}, err
	}

	input := productsvc.UpdateProductInput{
		Name:              r.Name,
		Description:       r.Description,
		SKU:               r.SKU,
		Price:             r.Price,
		ComparePrice:      r.ComparePrice,
		InventoryQuantity: r.InventoryQuantity,
		TrackInventory:    r.TrackInventory,
		Status:            status,
		Vendor:            r.Vendor,
		ProductType:       r.ProductType,
		Tags:              r.Tags,
		Images:            r.Images,
		Weight:            r.Weight,
		WeightUnit:        weightUnit,
		RequiresShipping:  r.RequiresShipping,
	}
	if r.SEO != nil {
		input.SEOTitle = r.SEO.Title
		input.SEODescription = r.SEO.Description
		if r.SEO.Keywords != nil {
			input.SEOKeywords = &r.SEO.Keywords
		}
	}
	return input, nil
}

func parseProductListQuery(r *http.Request) (productsvc.ListQuery, error) {
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return productsvc.ListQuery{}, err
	}
	params, err := parsePaginationParams(r)
	if err != nil {
		return productsvc.ListQuery{}, err
	}

	return productsvc.ListQuery{
		Filters: productsvc.ListFilters{
			Status:      validators.QueryString(r, "status"),
			Vendor:      validators.QueryString(r, "vendor"),
			ProductType: validators.QueryString(r, "product_type"),
			InStock:     inStock,
			Search:      r.URL.Query().Get("search"),
		},
		Sort: productsvc.Sort{
			By:    r.URL.Query().Get("sort_by"),
			Order: r.URL.Query().Get("sort_order"),
		},
		Pagination: params,
	}, nil
}

func parsePaginationParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	// Oversized per_page is clamped by Normalize, not rejected.
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}

func parseOptionalStatus(value *string) (*enums.ProductStatus, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := enums.ParseProductStatus(strings.TrimSpace(*value))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
			WithDetails(map[string][]string{"status": {"must be one of active, inactive, archived"}})
	}
	return &parsed, nil
}

func parseOptionalWeightUnit(value *string) (*enums.WeightUnit, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := enums.ParseWeightUnit(strings.TrimSpace(*value))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid weight unit").
			WithDetails(map[string][]string{"weight_unit": {"must be one of kg, g, lb, oz"}})
	}
	return &parsed, nil
}

func idParam(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string][]string{key: {"must be a positive integer"}})
	}
	return id, nil
}
