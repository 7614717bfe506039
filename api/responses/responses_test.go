package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/pagination"
	"github.com/stockroomhq/catalog-api/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Widget"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["name"] != "Widget" {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}

func TestWriteList(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := pagination.NewMeta(pagination.Params{Page: 2, PerPage: 15}, 31)
	WriteList(rec, []string{"a", "b"}, meta)

	body := decodeBody(t, rec)
	page, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("missing pagination block: %v", body)
	}
	if page["current_page"] != float64(2) || page["total"] != float64(31) || page["last_page"] != float64(3) {
		t.Fatalf("unexpected pagination: %v", page)
	}
}

func TestWriteBulk(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteBulk(rec, "Bulk inventory update completed", &types.BulkResults{
		Successful: 2,
		Failed:     1,
		Errors:     []string{"product 42: Product not found"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	results, ok := body["results"].(map[string]any)
	if !ok {
		t.Fatalf("missing results block: %v", body)
	}
	if results["successful"] != float64(2) || results["failed"] != float64(1) {
		t.Fatalf("unexpected results: %v", results)
	}
}

func TestWriteErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string][]string{
			"sku": {"The sku has already been taken."},
		})
	WriteError(context.Background(), testLogger(), rec, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("missing errors block: %v", body)
	}
	if _, ok := fields["sku"]; !ok {
		t.Fatalf("missing sku messages: %v", fields)
	}
}

func TestWriteErrorNotFoundUsesTypedMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	WriteError(context.Background(), testLogger(), rec, err)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Product not found" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestWriteErrorInsufficientStock(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientStock, "Insufficient inventory")
	WriteError(context.Background(), testLogger(), rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Insufficient inventory" {
		t.Fatalf("message = %v", body["message"])
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("error field must not leak on 400: %v", body)
	}
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, errors.New("db connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Internal server error" {
		t.Fatalf("message = %v", body["message"])
	}
	if body["error"] != "db connection refused" {
		t.Fatalf("error = %v, want root cause text", body["error"])
	}
}
