// Package pagination provides page requests and results for list endpoints.
package pagination

import (
	"math"
	"net/url"
	"strconv"
)

// PageRequest represents a client request for a page of data.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and page size.
// Offsets that do not fit in an int saturate at math.MaxInt.
func (r *PageRequest) Offset() int {
	if r.Page < 1 || r.PageSize < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses the page and page_size query parameters.
// Missing or malformed values fall back to the config defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	totalPages := 1
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Paginate slices an already ordered, in-memory result set. The request
// should be normalized; pages past the end yield empty data.
func Paginate[T any](items []T, req PageRequest) PageResult[T] {
	total := len(items)
	start := min(req.Offset(), total)
	end := start + min(max(req.PageSize, 0), total-start)

	page := make([]T, end-start)
	copy(page, items[start:end])

	return NewPageResult(page, total, req.Page, req.PageSize)
}
