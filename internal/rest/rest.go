// Package rest provides typed clients for the backend's /api resources. Each
// client is a thin wrapper over the HTTP gateway; all auth and error
// translation happens there.
package rest

import (
	"net/url"
	"strconv"
	"time"
)

// ListOptions are the common query parameters the list endpoints accept.
// Zero values are omitted from the query string.
type ListOptions struct {
	Search string
	Page   int
	Limit  int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// DateRange bounds a query to [Start, End] in the backend's date format.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) apply(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if !r.Start.IsZero() {
		q.Set("start", r.Start.Format("2006-01-02"))
	}
	if !r.End.IsZero() {
		q.Set("end", r.End.Format("2006-01-02"))
	}
	return q
}

// Pagination is the backend's paging block on list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
