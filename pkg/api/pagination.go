package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page size bounds
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery is the paging part of a list request. Pages are zero-based, as
// the WMS API expects.
type PageQuery struct {
	Page    int    `url:"page,omitempty" json:"page,omitempty"`
	Size    int    `url:"size,omitempty" json:"size,omitempty" validate:"omitempty,min=1,max=100"`
	SortBy  string `url:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortDir string `url:"sortDir,omitempty" json:"sortDir,omitempty" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// DefaultPageQuery returns the first page with the default size
func DefaultPageQuery() PageQuery {
	return PageQuery{Page: 0, Size: DefaultPageSize}
}

// PageResult is the paged list shape returned by the WMS API
type PageResult[T any] struct {
	Content    []T   `json:"content"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Sorted     bool  `json:"sorted"`
	Unsorted   bool  `json:"unsorted"`
	Total      int64 `json:"total"`
}

// NewPageResult builds a page from a slice of already paged items
func NewPageResult[T any](content []T, q PageQuery, total int64) PageResult[T] {
	if content == nil {
		content = []T{}
	}
	return PageResult[T]{
		Content:    content,
		PageNumber: q.Page,
		PageSize:   q.Size,
		Sorted:     q.SortBy != "",
		Unsorted:   q.SortBy == "",
		Total:      total,
	}
}

// TotalPages returns the number of pages, at least one
func (p PageResult[T]) TotalPages() int64 {
	if p.PageSize <= 0 {
		return 1
	}
	pages := (p.Total + int64(p.PageSize) - 1) / int64(p.PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

// HasNext reports whether a page follows this one
func (p PageResult[T]) HasNext() bool {
	return int64(p.PageNumber)+1 < p.TotalPages()
}

// ParsePageQuery parses paging parameters from a Gin context
func ParsePageQuery(c *gin.Context) PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))

	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return PageQuery{
		Page:    page,
		Size:    size,
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
	}
}

// Paginate slices items for q and wraps them in a page
func Paginate[T any](items []T, q PageQuery) PageResult[T] {
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
		q.Size = size
	}
	start := q.Page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return NewPageResult(items[start:end], q, int64(len(items)))
}
