// Package pagination computes page windows and page metadata for ordered
// result sets. Pages are 1-based.
package pagination

import (
	"math"

	dErrors "uims/pkg/domain-errors"
)

// Page is a validated page request.
type Page struct {
	Size  int
	Index int
}

// NewPage validates a page request. Sizes or indexes below 1 are a caller
// error; they are never clamped.
func NewPage(size, index int) (Page, error) {
	if size < 1 {
		return Page{}, dErrors.New(dErrors.CodeBadRequest, "page size must be at least 1")
	}
	if index < 1 {
		return Page{}, dErrors.New(dErrors.CodeBadRequest, "page index must be at least 1")
	}
	return Page{Size: size, Index: index}, nil
}

// Offset is the number of rows preceding the page. It saturates at
// math.MaxInt, so an index too far out to represent still reads as a page
// past the end.
func (p Page) Offset() int {
	if p.Size > 0 && p.Index-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Size * (p.Index - 1)
}

// Limit is the maximum number of rows in the page.
func (p Page) Limit() int {
	return p.Size
}

// Result is one page of items plus metadata about the unpaged set.
type Result[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	PageIndex  int
	PageSize   int
}

// NewResult wraps a page of items with metadata derived from total, the count
// of all matching rows ignoring the window.
func NewResult[T any](items []T, total int, page Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, page.Size),
		PageIndex:  page.Index,
		PageSize:   page.Size,
	}
}

// TotalPages is ceil(total / size).
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice pages an in-memory, already filtered and ordered source.
func Slice[T any](all []T, page Page) Result[T] {
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit()
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewResult(items, len(all), page)
}

// Map converts the items of a result, keeping its metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}
	return Result[U]{
		Items:      items,
		TotalCount: r.TotalCount,
		TotalPages: r.TotalPages,
		PageIndex:  r.PageIndex,
		PageSize:   r.PageSize,
	}
}
