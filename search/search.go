package search

import (
	"github.com/Mentallyspammed1/neonsearch/driver"
)

const (
	// DefaultLimit caps results per page when the caller sends none.
	DefaultLimit = 20

	// SourceAll is the sentinel requesting every registered source.
	SourceAll = "all"
)

// Request describes one aggregated search.
type Request struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources,omitempty"`
	Type    string   `json:"type,omitempty"`
	Page    int      `json:"page,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// Response is one aggregated, paginated result set. It is built fresh
// per cache miss and never mutated after construction.
type Response struct {
	Results         []driver.Video `json:"results"`
	Total           int            `json:"total"`
	Page            int            `json:"page"`
	SourcesSearched []string       `json:"sources_searched"`
}

// normalize fills request defaults in place.
func (r *Request) normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Type == "" {
		r.Type = driver.TypeVideo
	}
}
