package variant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/db"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
	"github.com/stockroomhq/catalog-api/pkg/types"
)

// NotFoundMessage is the fixed text rendered when a variant id is unknown.
const NotFoundMessage = "Variant not found"

// ProductNotFoundMessage is rendered when the parent product is unknown.
const ProductNotFoundMessage = "Product not found"

// Service exposes variant catalog operations.
type Service interface {
	ListVariants(ctx context.Context, query ListQuery) ([]VariantDTO, pagination.Meta, error)
	ListByProduct(ctx context.Context, productID int64) ([]VariantDTO, error)
	CreateVariant(ctx context.Context, input CreateVariantInput) (*VariantDTO, error)
	GetVariant(ctx context.Context, id int64) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, id int64, input UpdateVariantInput) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, id int64) error
	UpdatePositions(ctx context.Context, updates []PositionUpdate) *types.BulkResults
}

// CreateVariantInput holds the validated payload to create a variant.
type CreateVariantInput struct {
	ProductID          int64
	Title              string
	SKU                string
	Price              float64
	ComparePrice       *float64
	InventoryQuantity  int
	TrackInventory     *bool
	InventoryPolicy    *enums.InventoryPolicy
	FulfillmentService *string
	Option1            string
	Option2            *string
	Option3            *string
	Weight             *float64
	WeightUnit         *enums.WeightUnit
	Barcode            *string
	Images             []string
	RequiresShipping   *bool
	Taxable            *bool
	Position           *int
}

// UpdateVariantInput holds optional mutation values for a variant.
type UpdateVariantInput struct {
	Title              *string
	SKU                *string
	Price              *float64
	ComparePrice       *float64
	InventoryQuantity  *int
	TrackInventory     *bool
	InventoryPolicy    *enums.InventoryPolicy
	FulfillmentService *string
	Option1            *string
	Option2            *string
	Option3            *string
	Weight             *float64
	WeightUnit         *enums.WeightUnit
	Barcode            *string
	Images             *[]string
	RequiresShipping   *bool
	Taxable            *bool
	Position           *int
}

// PositionUpdate pairs a variant id with its new display position.
type PositionUpdate struct {
	ID       int64
	Position int
}

type productChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// service implements the variant service.
type service struct {
	repo     *Repository
	products productChecker
	logg     *logger.Logger
}

// NewService constructs a variant service instance.
func NewService(repo *Repository, products productChecker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variant repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, products: products, logg: logg}, nil
}

// ListVariants returns one page of variants plus pagination metadata.
func (s *service) ListVariants(ctx context.Context, query ListQuery) ([]VariantDTO, pagination.Meta, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}
	return NewVariantDTOs(rows), pagination.NewMeta(query.Pagination, total), nil
}

// ListByProduct returns all variants of a product ordered by position.
func (s *service) ListByProduct(ctx context.Context, productID int64) ([]VariantDTO, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product variants")
	}
	return NewVariantDTOs(rows), nil
}

// CreateVariant validates the parent product and sku, then inserts.
func (s *service) CreateVariant(ctx context.Context, input CreateVariantInput) (*VariantDTO, error) {
	if err := s.ensureProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(input.SKU)
	taken, err := s.repo.SKUExists(ctx, sku, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check variant sku")
	}
	if taken {
		return nil, skuTakenError()
	}

	variant := &models.ProductVariant{
		ProductID:          input.ProductID,
		Title:              strings.TrimSpace(input.Title),
		SKU:                sku,
		Price:              input.Price,
		ComparePrice:       input.ComparePrice,
		InventoryQuantity:  input.InventoryQuantity,
		TrackInventory:     true,
		InventoryPolicy:    enums.InventoryPolicyDeny,
		FulfillmentService: "manual",
		Option1:            input.Option1,
		Option2:            input.Option2,
		Option3:            input.Option3,
		Weight:             input.Weight,
		WeightUnit:         enums.WeightUnitKilogram,
		Barcode:            input.Barcode,
		Images:             input.Images,
		RequiresShipping:   true,
		Taxable:            true,
		Position:           1,
	}
	if input.TrackInventory != nil {
		variant.TrackInventory = *input.TrackInventory
	}
	if input.InventoryPolicy != nil {
		variant.InventoryPolicy = *input.InventoryPolicy
	}
	if input.FulfillmentService != nil {
		variant.FulfillmentService = *input.FulfillmentService
	}
	if input.WeightUnit != nil {
		variant.WeightUnit = *input.WeightUnit
	}
	if input.RequiresShipping != nil {
		variant.RequiresShipping = *input.RequiresShipping
	}
	if input.Taxable != nil {
		variant.Taxable = *input.Taxable
	}
	if input.Position != nil {
		variant.Position = *input.Position
	}

	created, err := s.repo.Create(ctx, variant)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_variants_sku") {
			return nil, skuTakenError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert variant")
	}
	return NewVariantDTO(created), nil
}

// GetVariant loads a single variant.
func (s *service) GetVariant(ctx context.Context, id int64) (*VariantDTO, error) {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	return NewVariantDTO(variant), nil
}

// UpdateVariant applies a partial update to an existing variant.
func (s *service) UpdateVariant(ctx context.Context, id int64, input UpdateVariantInput) (*VariantDTO, error) {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku != variant.SKU {
			taken, err := s.repo.SKUExists(ctx, sku, id)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check variant sku")
			}
			if taken {
				return nil, skuTakenError()
			}
		}
		variant.SKU = sku
	}

	applyUpdate(variant, input)

	updated, err := s.repo.Update(ctx, variant)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_variants_sku") {
			return nil, skuTakenError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant")
	}
	return NewVariantDTO(updated), nil
}

// DeleteVariant removes a single variant. The parent product is unaffected.
func (s *service) DeleteVariant(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variant")
	}
	return nil
}

// UpdatePositions overwrites display positions one row at a time. Items are
// independent: a missing id or failed write is counted and reported without
// aborting the rest, and duplicate positions are accepted as given.
func (s *service) UpdatePositions(ctx context.Context, updates []PositionUpdate) *types.BulkResults {
	results := &types.BulkResults{Errors: []string{}}
	var failures error

	for _, update := range updates {
		touched, err := s.repo.UpdatePosition(ctx, update.ID, update.Position)
		if err != nil {
			results.Failed++
			results.Errors = append(results.Errors,
				fmt.Sprintf("variant %d: %s", update.ID, err.Error()))
			failures = multierr.Append(failures, err)
			continue
		}
		if !touched {
			results.Failed++
			results.Errors = append(results.Errors,
				fmt.Sprintf("variant %d: %s", update.ID, NotFoundMessage))
			continue
		}
		results.Successful++
	}

	if failures != nil {
		s.logg.Warn(
			s.logg.WithField(ctx, "failed", results.Failed),
			"bulk position update completed with failures",
		)
	}
	return results
}

func (s *service) ensureProduct(ctx context.Context, productID int64) error {
	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, ProductNotFoundMessage)
	}
	return nil
}

func skuTakenError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "sku has already been taken").
		WithDetails(map[string][]string{
			"sku": {"The sku has already been taken."},
		})
}

func applyUpdate(variant *models.ProductVariant, input UpdateVariantInput) {
	if input.Title != nil {
		variant.Title = strings.TrimSpace(*input.Title)
	}
	if input.Price != nil {
		variant.Price = *input.Price
	}
	if input.ComparePrice != nil {
		variant.ComparePrice = input.ComparePrice
	}
	if input.InventoryQuantity != nil {
		variant.InventoryQuantity = *input.InventoryQuantity
	}
	if input.TrackInventory != nil {
		variant.TrackInventory = *input.TrackInventory
	}
	if input.InventoryPolicy != nil {
		variant.InventoryPolicy = *input.InventoryPolicy
	}
	if input.FulfillmentService != nil {
		variant.FulfillmentService = *input.FulfillmentService
	}
	if input.Option1 != nil {
		variant.Option1 = *input.Option1
	}
	if input.Option2 != nil {
		variant.Option2 = input.Option2
	}
	if input.Option3 != nil {
		variant.Option3 = input.Option3
	}
	if input.Weight != nil {
		variant.Weight = input.Weight
	}
	if input.WeightUnit != nil {
		variant.WeightUnit = *input.WeightUnit
	}
	if input.Barcode != nil {
		variant.Barcode = input.Barcode
	}
	if input.Images != nil {
		variant.Images = append([]string(nil), *input.Images...)
	}
	if input.RequiresShipping != nil {
		variant.RequiresShipping = *input.RequiresShipping
	}
	if input.Taxable != nil {
		variant.Taxable = *input.Taxable
	}
	if input.Position != nil {
		variant.Position = *input.Position
	}
}
