package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	variantsvc "github.com/stockroomhq/catalog-api/internal/variants"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
	"github.com/stockroomhq/catalog-api/pkg/types"
)

type stubVariantService struct {
	variant       *variantsvc.VariantDTO
	list          []variantsvc.VariantDTO
	meta          pagination.Meta
	err           error
	lastCreate    variantsvc.CreateVariantInput
	lastPositions []variantsvc.PositionUpdate
	bulkResults   *types.BulkResults
}

func (s *stubVariantService) ListVariants(_ context.Context, _ variantsvc.ListQuery) ([]variantsvc.VariantDTO, pagination.Meta, error) {
	return s.list, s.meta, s.err
}

func (s *stubVariantService) ListByProduct(context.Context, int64) ([]variantsvc.VariantDTO, error) {
	return s.list, s.err
}

func (s *stubVariantService) CreateVariant(_ context.Context, input variantsvc.CreateVariantInput) (*variantsvc.VariantDTO, error) {
	s.lastCreate = input
	return s.variant, s.err
}

func (s *stubVariantService) GetVariant(context.Context, int64) (*variantsvc.VariantDTO, error) {
	return s.variant, s.err
}

func (s *stubVariantService) UpdateVariant(_ context.Context, _ int64, _ variantsvc.UpdateVariantInput) (*variantsvc.VariantDTO, error) {
	return s.variant, s.err
}

func (s *stubVariantService) DeleteVariant(context.Context, int64) error {
	return s.err
}

func (s *stubVariantService) UpdatePositions(_ context.Context, updates []variantsvc.PositionUpdate) *types.BulkResults {
	s.lastPositions = updates
	return s.bulkResults
}

func TestCreateVariant(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		stub := &stubVariantService{variant: &variantsvc.VariantDTO{ID: 1, Title: "Large / Blue"}}
		body := `{"product_id":1,"title":"Large / Blue","sku":"VAR-1","price":9.99,"option1":"Large","inventory_policy":"continue"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/variants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateVariant(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastCreate.InventoryPolicy == nil || *stub.lastCreate.InventoryPolicy != "continue" {
			t.Fatalf("policy not forwarded: %+v", stub.lastCreate)
		}
	})

	t.Run("unknown parent answers 404", func(t *testing.T) {
		stub := &stubVariantService{err: pkgerrors.New(pkgerrors.CodeNotFound, variantsvc.ProductNotFoundMessage)}
		body := `{"product_id":99,"title":"T","sku":"VAR-2","price":1,"option1":"A"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/variants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateVariant(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["message"] != "Product not found" {
			t.Fatalf("message = %v", payload["message"])
		}
	})

	t.Run("invalid policy answers 422", func(t *testing.T) {
		body := `{"product_id":1,"title":"T","sku":"VAR-3","price":1,"option1":"A","inventory_policy":"maybe"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/variants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateVariant(&stubVariantService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("missing option1 answers 422", func(t *testing.T) {
		body := `{"product_id":1,"title":"T","sku":"VAR-4","price":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/variants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateVariant(&stubVariantService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestGetVariantNotFound(t *testing.T) {
	stub := &stubVariantService{err: pkgerrors.New(pkgerrors.CodeNotFound, variantsvc.NotFoundMessage)}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/variants/5", nil), "id", "5")
	rec := httptest.NewRecorder()
	GetVariant(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["message"] != "Variant not found" {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestUpdateVariantPositions(t *testing.T) {
	logg := testLogger()

	t.Run("forwards updates and reports summary", func(t *testing.T) {
		stub := &stubVariantService{
			bulkResults: &types.BulkResults{
				Successful: 1,
				Failed:     1,
				Errors:     []string{"variant 99: Variant not found"},
			},
		}
		body := `{"variants":[{"id":1,"position":2},{"id":99,"position":1}]}`
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/variants/positions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpdateVariantPositions(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(stub.lastPositions) != 2 || stub.lastPositions[1].ID != 99 {
			t.Fatalf("updates not forwarded: %+v", stub.lastPositions)
		}
		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["message"] != "Positions updated" {
			t.Fatalf("message = %v", payload["message"])
		}
		results := payload["results"].(map[string]any)
		if results["failed"] != float64(1) {
			t.Fatalf("unexpected results: %v", results)
		}
	})

	t.Run("zero position answers 422", func(t *testing.T) {
		body := `{"variants":[{"id":1,"position":0}]}`
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/variants/positions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpdateVariantPositions(&stubVariantService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("empty list answers 422", func(t *testing.T) {
		body := `{"variants":[]}`
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/variants/positions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpdateVariantPositions(&stubVariantService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}
