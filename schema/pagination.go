package schema

import (
	"net/url"
	"strconv"
)

// Pagination represents listing page and limit, nil values are not sent
type Pagination struct {
	Page  *int `json:"page,omitempty"`
	Limit *int `json:"limit,omitempty"`
}

// NewPagination creates a pagination with both values set
func NewPagination(page, limit int) Pagination {
	return Pagination{Page: &page, Limit: &limit}
}

// Values returns page and limit query parameters
func (p Pagination) Values() url.Values {
	values := url.Values{}
	if p.Page != nil {
		values.Set("page", strconv.Itoa(*p.Page))
	}
	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}
	return values
}
