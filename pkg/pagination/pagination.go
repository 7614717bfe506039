package pagination

// DefaultPerPage is the standard page size when per_page is not provided.
const DefaultPerPage = 15

// MaxPerPage caps how many rows any list query can request.
const MaxPerPage = 100

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Meta is the pagination block rendered on list responses.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Normalize enforces the default page and the per-page clamp.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// NewMeta builds the response pagination block for a total row count.
func NewMeta(params Params, total int64) Meta {
	n := params.Normalize()
	lastPage := int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Meta{
		CurrentPage: n.Page,
		PerPage:     n.PerPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
