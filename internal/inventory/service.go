package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockroomhq/catalog-api/pkg/enums"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/types"
)

// InsufficientMessage is the fixed text rendered on a rejected decrement.
const InsufficientMessage = "Insufficient inventory"

// Adjustable is the capability an entity repository exposes to take part in
// inventory adjustments. SubtractQuantity applies its eligibility guard and
// the write as a single conditional statement and reports through the bool
// whether any row was touched.
type Adjustable[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	SetQuantity(ctx context.Context, id int64, qty int) error
	AddQuantity(ctx context.Context, id int64, qty int) error
	SubtractQuantity(ctx context.Context, id int64, qty int) (bool, error)
}

// Adjustment is one requested inventory mutation.
type Adjustment struct {
	ID        int64
	Quantity  int
	Operation enums.InventoryOperation
}

// Service applies set/increment/decrement operations to one entity kind.
type Service[T any] struct {
	repo     Adjustable[T]
	label    string
	notFound string
	logg     *logger.Logger
}

// NewService constructs an inventory service for one entity kind. label
// names the kind in bulk error messages; notFound is the fixed 404 text.
func NewService[T any](repo Adjustable[T], label, notFound string, logg *logger.Logger) (*Service[T], error) {
	if repo == nil {
		return nil, fmt.Errorf("adjustable repository required")
	}
	if label == "" {
		return nil, fmt.Errorf("entity label required")
	}
	if notFound == "" {
		return nil, fmt.Errorf("not-found message required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service[T]{repo: repo, label: label, notFound: notFound, logg: logg}, nil
}

// Adjust applies a single adjustment and returns the freshly reloaded
// entity. A decrement whose guard rejects the write fails with the
// insufficient-inventory condition and leaves the row unchanged.
func (s *Service[T]) Adjust(ctx context.Context, adj Adjustment) (*T, error) {
	if !adj.Operation.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory operation").
			WithDetails(map[string][]string{
				"operation": {fmt.Sprintf("The operation %q is not supported.", adj.Operation)},
			})
	}

	if _, err := s.repo.FindByID(ctx, adj.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, s.notFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+s.label)
	}

	switch adj.Operation {
	case enums.InventoryOperationSet:
		if err := s.repo.SetQuantity(ctx, adj.ID, adj.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set inventory")
		}
	case enums.InventoryOperationIncrement:
		if err := s.repo.AddQuantity(ctx, adj.ID, adj.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment inventory")
		}
	case enums.InventoryOperationDecrement:
		applied, err := s.repo.SubtractQuantity(ctx, adj.ID, adj.Quantity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement inventory")
		}
		if !applied {
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, InsufficientMessage)
		}
	}

	entity, err := s.repo.FindByID(ctx, adj.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload "+s.label)
	}
	return entity, nil
}

// BulkAdjust applies adjustments sequentially and independently. Failed
// items are counted and described without aborting or rolling back earlier
// writes; the caller always answers 200 with this summary.
func (s *Service[T]) BulkAdjust(ctx context.Context, adjs []Adjustment) *types.BulkResults {
	results := &types.BulkResults{Errors: []string{}}
	var failures error

	for _, adj := range adjs {
		if _, err := s.Adjust(ctx, adj); err != nil {
			results.Failed++
			results.Errors = append(results.Errors,
				fmt.Sprintf("%s %d: %s", s.label, adj.ID, publicMessage(err)))
			failures = multierr.Append(failures, err)
			continue
		}
		results.Successful++
	}

	if failures != nil {
		s.logg.Warn(
			s.logg.WithFields(ctx, map[string]any{
				"entity":     s.label,
				"failed":     results.Failed,
				"successful": results.Successful,
			}),
			"bulk inventory adjustment completed with failures",
		)
	}
	return results
}

func publicMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
