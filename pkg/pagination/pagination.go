package pagination

import (
	"net/url"
	"strconv"

	"github.com/mwhitfield/placard/pkg/query"
)

// PageRequest represents a client request for a page of data with optional
// search and sorting.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
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

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, page_size, search, sort.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Sort:     query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	Items       []T `json:"items"`
}

// TotalPages computes the page count for a total item count using ceiling
// division. An empty result set has zero pages.
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage pulls a requested page back to the last page when it overshoots.
// A zero total leaves the request untouched.
func ClampPage(page, totalPages int) int {
	if page > totalPages && totalPages != 0 {
		return totalPages
	}
	return page
}

// NewPageResult assembles a PageResult with calculated total pages.
// The current page is assumed to be already clamped by the caller.
func NewPageResult[T any](items []T, totalItems, currentPage, pageSize int) PageResult[T] {
	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		TotalItems:  totalItems,
		TotalPages:  TotalPages(totalItems, pageSize),
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Items:       items,
	}
}
