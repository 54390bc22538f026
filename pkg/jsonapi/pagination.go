package jsonapi

import (
	"net/url"
	"strconv"
)

// Pagination describes one page of a collection. PerPage of 0 means the
// collection is not paginated and every item is on page 1.
type Pagination struct {
	Total   int64
	Page    int
	PerPage int
	BaseURL string
}

// NewPagination creates a Pagination, clamping the page to at least 1.
func NewPagination(total int64, page, perPage int, baseURL string) *Pagination {
	if page < 1 {
		page = 1
	}
	return &Pagination{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		BaseURL: baseURL,
	}
}

// TotalPages returns the number of pages, at least 1.
func (p *Pagination) TotalPages() int {
	if p.PerPage < 1 || p.Total == 0 {
		return 1
	}
	pages := int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// HasPrev reports whether a previous page exists.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p *Pagination) HasNext() bool {
	return p.Page < p.TotalPages()
}

// Links generates pagination links from BaseURL.
func (p *Pagination) Links() *Links {
	totalPages := p.TotalPages()

	links := &Links{
		Self:  p.buildURL(p.Page),
		First: p.buildURL(1),
		Last:  p.buildURL(totalPages),
	}
	if p.HasPrev() {
		links.Prev = p.buildURL(p.Page - 1)
	}
	if p.HasNext() {
		links.Next = p.buildURL(p.Page + 1)
	}
	return links
}

func (p *Pagination) buildURL(page int) string {
	if p.BaseURL == "" {
		return ""
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return p.BaseURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// ParsePage extracts the 1-based page number from URL query values. Missing
// or invalid values default to page 1.
func ParsePage(query url.Values) int {
	v := query.Get("page")
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
