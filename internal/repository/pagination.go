package repository

import (
	"fmt"
	"strings"
)

// PageRequest carries pagination and sorting parameters. Page is 0-based.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// NewPageRequest builds a PageRequest, clamping page and size to sane
// bounds.
func NewPageRequest(page, size int, sortBy, sortDir string) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 12
	}
	if size > 100 {
		size = 100
	}
	return PageRequest{Page: page, Size: size, SortBy: sortBy, SortDir: sortDir}
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Limit returns the page size.
func (p PageRequest) Limit() int {
	return p.Size
}

// OrderClause maps the requested sort field onto a whitelisted column and
// returns an ORDER BY expression. Unknown fields fall back to the given
// default expression; the direction is normalized to ASC/DESC.
func (p PageRequest) OrderClause(columns map[string]string, fallback string) string {
	column, ok := columns[p.SortBy]
	if !ok {
		return fallback
	}
	dir := "ASC"
	if strings.EqualFold(p.SortDir, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// Page is one page of query results plus the totals needed by clients to
// paginate.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage assembles a Page from query results and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	// A zero Size can only come from a hand-built PageRequest that skipped
	// NewPageRequest; report a single page instead of dividing by zero.
	pages := 1
	if req.Size > 0 {
		pages = int(total) / req.Size
		if int(total)%req.Size != 0 {
			pages++
		}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
