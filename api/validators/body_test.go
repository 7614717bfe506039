package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/stockroomhq/catalog-api/pkg/errors"
)

type samplePayload struct {
	Name  string   `json:"name" validate:"required"`
	SKU   string   `json:"sku" validate:"required,sku"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=3,unique"`
}

func decodeRequest(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload samplePayload
	return DecodeJSONBody(req, &payload)
}

func fieldDetails(t *testing.T, err error) map[string][]string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string][]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	return details
}

func TestDecodeJSONBodyValid(t *testing.T) {
	if err := decodeRequest(t, `{"name":"Widget","sku":"WID_01","price":9.99}`); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestDecodeJSONBodyMissingFieldsKeyedByJSONName(t *testing.T) {
	err := decodeRequest(t, `{"name":"Widget"}`)
	details := fieldDetails(t, err)
	if msgs := details["sku"]; len(msgs) != 1 || msgs[0] != "is required" {
		t.Fatalf("sku messages = %v", msgs)
	}
	if msgs := details["price"]; len(msgs) != 1 || msgs[0] != "is required" {
		t.Fatalf("price messages = %v", msgs)
	}
}

func TestDecodeJSONBodySKUFormat(t *testing.T) {
	err := decodeRequest(t, `{"name":"Widget","sku":"has spaces!","price":1}`)
	details := fieldDetails(t, err)
	if msgs := details["sku"]; len(msgs) != 1 || !strings.Contains(msgs[0], "letters, numbers") {
		t.Fatalf("sku messages = %v", msgs)
	}
}

func TestDecodeJSONBodyDuplicateTags(t *testing.T) {
	err := decodeRequest(t, `{"name":"Widget","sku":"W-1","price":1,"tags":["a","a"]}`)
	details := fieldDetails(t, err)
	if msgs := details["tags"]; len(msgs) != 1 || msgs[0] != "must not contain duplicates" {
		t.Fatalf("tags messages = %v", msgs)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	err := decodeRequest(t, `{"name":"Widget","sku":"W-1","price":1,"bogus":true}`)
	details := fieldDetails(t, err)
	if _, ok := details["body"]; !ok {
		t.Fatalf("expected body detail, got %v", details)
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	err := decodeRequest(t, `{"name":`)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
