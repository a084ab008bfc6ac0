package utils

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is the page window requested by a list call
type Pagination struct {
	Page  int
	Limit int
}

// PageInfo is the pagination block returned with list results
type PageInfo struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ParsePagination reads page and limit query values, falling back to defaults
// for missing, malformed or non-positive values
func ParsePagination(page, limit string) Pagination {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = min(n, MaxLimit)
	}
	return p
}

// Offset is the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Info builds the response block for a result set of total rows
func (p Pagination) Info(total int64) PageInfo {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return PageInfo{CurrentPage: p.Page, TotalPages: pages, TotalItems: total, ItemsPerPage: p.Limit}
}
