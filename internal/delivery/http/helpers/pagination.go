package helpers

import (
	"net/http"
	"strconv"

	"newsletterplatform/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePagination reads limit and offset from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return domain.PaginationParams{Limit: limit, Offset: offset}
}

// Page is the pagination metadata included in paginated list responses.
// swagger:model Page
type Page struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewPage builds Page metadata from the request parameters and total count.
// TotalPages is computed as ceiling(total / limit); if limit is 0, TotalPages is 0.
func NewPage(p domain.PaginationParams, total int) Page {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Page{
		Total:       total,
		Limit:       p.Limit,
		Offset:      p.Offset,
		CurrentPage: p.CurrentPage(),
		TotalPages:  totalPages,
	}
}
