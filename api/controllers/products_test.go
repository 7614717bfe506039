package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	productsvc "github.com/stockroomhq/catalog-api/internal/products"
	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

type stubProductService struct {
	product    *productsvc.ProductDTO
	list       []productsvc.ProductDTO
	meta       pagination.Meta
	err        error
	lastQuery  productsvc.ListQuery
	lastCreate productsvc.CreateProductInput
	deletedID  int64
}

func (s *stubProductService) ListProducts(_ context.Context, query productsvc.ListQuery) ([]productsvc.ProductDTO, pagination.Meta, error) {
	s.lastQuery = query
	return s.list, s.meta, s.err
}

func (s *stubProductService) CreateProduct(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.lastCreate = input
	return s.product, s.err
}

func (s *stubProductService) GetProduct(context.Context, int64) (*productsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubProductService) UpdateProduct(_ context.Context, _ int64, _ productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubProductService) DeleteProduct(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{product: &productsvc.ProductDTO{ID: 1, Name: "Widget"}}
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil), "id", "1")
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, productsvc.NotFoundMessage)}
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil), "id", "42")
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["message"] != "Product not found" {
			t.Fatalf("message = %v", body["message"])
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), "id", "abc")
		rec := httptest.NewRecorder()
		GetProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		stub := &stubProductService{product: &productsvc.ProductDTO{ID: 1, Name: "Widget", SKU: "WID-1"}}
		body := `{"name":"Widget","sku":"WID-1","price":19.99}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.lastCreate.SKU != "WID-1" || stub.lastCreate.Price != 19.99 {
			t.Fatalf("unexpected input: %+v", stub.lastCreate)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Widget"}`))
		rec := httptest.NewRecorder()
		CreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		fields, ok := body["errors"].(map[string]any)
		if !ok {
			t.Fatalf("missing errors block: %v", body)
		}
		if _, ok := fields["sku"]; !ok {
			t.Fatalf("expected sku error, got %v", fields)
		}
		if _, ok := fields["price"]; !ok {
			t.Fatalf("expected price error, got %v", fields)
		}
	})

	t.Run("bad sku format", func(t *testing.T) {
		body := `{"name":"Widget","sku":"has spaces","price":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		body := `{"name":"Widget","sku":"WID-2","price":1,"status":"discontinued"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestListProducts(t *testing.T) {
	logg := testLogger()

	t.Run("passes filters and clamps per_page downstream", func(t *testing.T) {
		stub := &stubProductService{
			list: []productsvc.ProductDTO{},
			meta: pagination.NewMeta(pagination.Params{Page: 1, PerPage: 200}, 0),
		}
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/products?status=active&in_stock=true&per_page=200&sort_by=price&sort_order=asc", nil)
		rec := httptest.NewRecorder()
		ListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastQuery.Filters.Status == nil || *stub.lastQuery.Filters.Status != "active" {
			t.Fatalf("status filter not forwarded: %+v", stub.lastQuery.Filters)
		}
		if stub.lastQuery.Filters.InStock == nil || !*stub.lastQuery.Filters.InStock {
			t.Fatalf("in_stock filter not forwarded: %+v", stub.lastQuery.Filters)
		}
		if stub.lastQuery.Sort.By != "price" || stub.lastQuery.Sort.Order != "asc" {
			t.Fatalf("sort not forwarded: %+v", stub.lastQuery.Sort)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		page := body["pagination"].(map[string]any)
		if page["per_page"] != float64(100) {
			t.Fatalf("expected clamped per_page 100, got %v", page["per_page"])
		}
	})

	t.Run("rejects non-numeric page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=abc", nil)
		rec := httptest.NewRecorder()
		ListProducts(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	logg := testLogger()
	stub := &stubProductService{}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/9", nil), "id", "9")
	rec := httptest.NewRecorder()
	DeleteProduct(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.deletedID != 9 {
		t.Fatalf("expected delete of id 9, got %d", stub.deletedID)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Product deleted" {
		t.Fatalf("message = %v", body["message"])
	}
}
