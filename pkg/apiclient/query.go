package apiclient

import (
	"net/url"
	"strconv"
)

// QueryOptions are passed through to the backend as query parameters.
// Criteria keys follow the backend's filter syntax, e.g. "patronId.equals".
type QueryOptions struct {
	// Page is the zero-based page index; nil leaves it to the server.
	Page *int
	// Size is the page size; zero leaves it to the server.
	Size int
	// Sort entries look like "rentalDate,desc".
	Sort []string
	// Criteria holds filter parameters.
	Criteria url.Values
}

// WithPage sets the page index and returns o.
func (o *QueryOptions) WithPage(page int) *QueryOptions {
	o.Page = &page
	return o
}

// Where adds a criteria parameter and returns o.
func (o *QueryOptions) Where(key, value string) *QueryOptions {
	if o.Criteria == nil {
		o.Criteria = url.Values{}
	}
	o.Criteria.Add(key, value)
	return o
}

// Values encodes o as URL query values. A nil receiver yields empty values.
func (o *QueryOptions) Values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	for key, values := range o.Criteria {
		if key == "sort" {
			continue
		}
		for _, value := range values {
			v.Add(key, value)
		}
	}
	if o.Page != nil {
		v.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size > 0 {
		v.Set("size", strconv.Itoa(o.Size))
	}
	for _, s := range o.Sort {
		v.Add("sort", s)
	}
	for _, s := range o.Criteria["sort"] {
		v.Add("sort", s)
	}
	return v
}

// Page is one page of query results.
type Page[T any] struct {
	Items []*T
	// Total is the number of matching entities across all pages. It falls back
	// to len(Items) when the server does not report it.
	Total int64
}

func withQuery(rawURL string, opts *QueryOptions) string {
	v := opts.Values()
	if len(v) == 0 {
		return rawURL
	}
	return rawURL + "?" + v.Encode()
}
