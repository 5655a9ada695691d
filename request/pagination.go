package request

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage bounds Page so that Offset stays within a 32-bit int.
	// Keep in sync with the lte constraint on Pagination.Page.
	MaxPage = 1_000_000
)

// Pagination is the page selector accepted by list endpoints.
type Pagination struct {
	Page int `form:"page" json:"page" validate:"gt=0,lte=1000000" message:"page number must be greater than 0" message_lte:"page number must be at most 1000000"`
	Size int `form:"size" json:"size" validate:"gte=1,lte=100" message:"page size must be between 1 and 100"`
}

// SetDefaults implements Defaulter.
func (p *Pagination) SetDefaults() {
	p.Page = DefaultPage
	p.Size = DefaultPageSize
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page is one page of a list result.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// NewPage builds a Page for the given selector.
func NewPage[T any](p Pagination, total int64, data []T) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Total: total, Page: p.Page, Size: p.Size}
}
