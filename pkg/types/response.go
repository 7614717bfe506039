package types

import "github.com/stockroomhq/catalog-api/pkg/pagination"

// SuccessEnvelope is the JSON shape for all successful responses.
type SuccessEnvelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Results    *BulkResults     `json:"results,omitempty"`
}

// ErrorEnvelope is the JSON shape for all failed responses. Errors carries
// field-keyed validation messages; Error carries the raw failure text on
// unclassified 500s.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// BulkResults summarizes a batch operation. Bulk endpoints always answer
// 200 and communicate partial failure only through this block.
type BulkResults struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}
