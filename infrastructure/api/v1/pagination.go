package v1

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
)

// DefaultPageSize is the default number of items per page.
const DefaultPageSize = 20

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 100

// MaxPage keeps Offset within int range for any allowed page size.
const MaxPage = math.MaxInt / MaxPageSize

// PaginationParams holds pagination parameters parsed from query strings.
type PaginationParams struct {
	page     int
	pageSize int
}

// NewPaginationParams creates pagination params with defaults.
func NewPaginationParams() PaginationParams {
	return PaginationParams{
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// ParsePagination parses page and page_size from the query string.
// Invalid values fall back to the defaults; page_size is capped.
func ParsePagination(r *http.Request) PaginationParams {
	params := NewPaginationParams()
	q := r.URL.Query()

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params = params.WithPage(page)
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		params = params.WithPageSize(size)
	}
	return params
}

// Page returns the page number (1-indexed).
func (p PaginationParams) Page() int { return p.page }

// PageSize returns the page size.
func (p PaginationParams) PageSize() int { return p.pageSize }

// Offset returns the index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.page - 1) * p.pageSize
}

// WithPage returns a copy with the specified page.
func (p PaginationParams) WithPage(page int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	p.page = page
	return p
}

// WithPageSize returns a copy with the specified page size.
func (p PaginationParams) WithPageSize(size int) PaginationParams {
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	p.pageSize = size
	return p
}

// TotalPages returns the number of pages needed for total items.
func (p PaginationParams) TotalPages(total int) int {
	return (total + p.pageSize - 1) / p.pageSize
}

// Paginate returns the slice of items on the requested page. Pages past
// the end are empty.
func Paginate[T any](items []T, p PaginationParams) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+p.pageSize, len(items))
	return items[start:end]
}

// PaginationMeta builds a JSON:API meta object from pagination params and total count.
func PaginationMeta(params PaginationParams, total int) *jsonapi.Meta {
	return &jsonapi.Meta{
		"page":        params.Page(),
		"page_size":   params.PageSize(),
		"total_count": total,
		"total_pages": params.TotalPages(total),
	}
}

// PaginationLinks builds JSON:API links from the request, params, and total count.
func PaginationLinks(r *http.Request, params PaginationParams, total int) *jsonapi.Links {
	totalPages := params.TotalPages(total)

	buildURL := func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(params.PageSize()))
		return fmt.Sprintf("%s?%s", r.URL.Path, q.Encode())
	}

	links := jsonapi.Links{
		Self:  buildURL(params.Page()),
		First: buildURL(1),
	}
	if totalPages > 0 {
		links.Last = buildURL(totalPages)
	}
	if params.Page() > 1 {
		links.Prev = buildURL(params.Page() - 1)
	}
	if params.Page() < totalPages {
		links.Next = buildURL(params.Page() + 1)
	}
	return &links
}
