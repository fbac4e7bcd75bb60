package kernel

import "warehouse/internal/pkg/errs"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	number int
	size   int
}

func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, "unbounded")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("pageSize", size, 1, MaxPageSize)
	}
	return Page{number: number, size: size}, nil
}

func (p Page) Number() int { return p.number }
func (p Page) Size() int   { return p.size }
func (p Page) Offset() int { return (p.number - 1) * p.size }

// Paginated is one page of results together with the total row count.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginated[T any](items []T, total int64, page Page) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if page.size > 0 {
		totalPages = int((total + int64(page.size) - 1) / int64(page.size))
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page.number,
		PageSize:   page.size,
		TotalPages: totalPages,
	}
}
