package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
)

// NotFoundMessage is the fixed text rendered when a product id is unknown.
const NotFoundMessage = "Product not found"

// Service exposes product catalog operations.
type Service interface {
	ListProducts(ctx context.Context, query ListQuery) ([]ProductDTO, pagination.Meta, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name              string
	Description       *string
	SKU               string
	Price             float64
	ComparePrice      *float64
	InventoryQuantity int
	TrackInventory    *bool
	Status            *enums.ProductStatus
	Vendor            *string
	ProductType       *string
	Tags              []string
	Images            []string
	Weight            *float64
	WeightUnit        *enums.WeightUnit
	RequiresShipping  *bool
	SEOTitle          *string
	SEODescription    *string
	SEOKeywords       []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	SKU               *string
	Price             *float64
	ComparePrice      *float64
	InventoryQuantity *int
	TrackInventory    *bool
	Status            *enums.ProductStatus
	Vendor            *string
	ProductType       *string
	Tags              *[]string
	Images            *[]string
	Weight            *float64
	WeightUnit        *enums.WeightUnit
	RequiresShipping  *bool
	SEOTitle          *string
	SEODescription    *string
	SEOKeywords       *[]string
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListProducts returns one page of products plus pagination metadata.
func (s *service) ListProducts(ctx context.Context, query ListQuery) ([]ProductDTO, pagination.Meta, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(rows), pagination.NewMeta(query.Pagination, total), nil
}

// CreateProduct validates sku uniqueness and inserts the product.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)

	taken, err := s.repo.SKUExists(ctx, sku, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product sku")
	}
	if taken {
		return nil, skuTakenError()
	}

	product := &models.Product{
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		SKU:               sku,
		Price:             input.Price,
		ComparePrice:      input.ComparePrice,
		InventoryQuantity: input.InventoryQuantity,
		TrackInventory:    true,
		Status:            enums.ProductStatusActive,
		Vendor:            input.Vendor,
		ProductType:       input.ProductType,
		Tags:              input.Tags,
		Images:            input.Images,
		Weight:            input.Weight,
		WeightUnit:        enums.WeightUnitKilogram,
		RequiresShipping:  true,
		SEOTitle:          input.SEOTitle,
		SEODescription:    input.SEODescription,
		SEOKeywords:       input.SEOKeywords,
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.WeightUnit != nil {
		product.WeightUnit = *input.WeightUnit
	}
	if input.RequiresShipping != nil {
		product.RequiresShipping = *input.RequiresShipping
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		// Concurrent create can slip past the pre-check; the unique index
		// is the backstop.
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, skuTakenError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return NewProductDTO(created), nil
}

// GetProduct loads the product with its variants.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByIDWithVariants(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku != product.SKU {
			taken, err := s.repo.SKUExists(ctx, sku, id)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product sku")
			}
			if taken {
				return nil, skuTakenError()
			}
		}
		product.SKU = sku
	}

	applyUpdate(product, input)

	if _, err := s.repo.Update(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, skuTakenError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.FindByIDWithVariants(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the product; the FK cascade handles its variants.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func skuTakenError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "sku has already been taken").
		WithDetails(map[string][]string{
			"sku": {"The sku has already been taken."},
		})
}

func applyUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = input.ComparePrice
	}
	if input.InventoryQuantity != nil {
		product.InventoryQuantity = *input.InventoryQuantity
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.Vendor != nil {
		product.Vendor = input.Vendor
	}
	if input.ProductType != nil {
		product.ProductType = input.ProductType
	}
	if input.Tags != nil {
		product.Tags = append([]string(nil), *input.Tags...)
	}
	if input.Images != nil {
		product.Images = append([]string(nil), *input.Images...)
	}
	if input.Weight != nil {
		product.Weight = input.Weight
	}
	if input.WeightUnit != nil {
		product.WeightUnit = *input.WeightUnit
	}
	if input.RequiresShipping != nil {
		product.RequiresShipping = *input.RequiresShipping
	}
	if input.SEOTitle != nil {
		product.SEOTitle = input.SEOTitle
	}
	if input.SEODescription != nil {
		product.SEODescription = input.SEODescription
	}
	if input.SEOKeywords != nil {
		product.SEOKeywords = append([]string(nil), *input.SEOKeywords...)
	}
}
