package helix

import (
	"net/http"
	"strconv"
	"time"
)

// Cursor is an opaque pointer to the current page of a paginated result.
// It is only ever sent back verbatim.
type Cursor string

// Pagination is the pagination object of a Helix response envelope.
type Pagination struct {
	Cursor Cursor `json:"cursor,omitempty"`
}

// InnerResponse is the decoded Helix response envelope.
type InnerResponse[D any] struct {
	Data       D          `json:"data"`
	Pagination Pagination `json:"pagination"`
	Total      *int64     `json:"total,omitempty"`
}

// RateLimit holds the rate limit state Helix reports in response headers.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Known reports whether any rate limit header was present
func (r RateLimit) Known() bool {
	return r.Limit > 0 || !r.Reset.IsZero()
}

func parseRateLimit(h http.Header) RateLimit {
	var rl RateLimit
	if v, err := strconv.Atoi(h.Get("Ratelimit-Limit")); err == nil {
		rl.Limit = v
	}
	if v, err := strconv.Atoi(h.Get("Ratelimit-Remaining")); err == nil {
		rl.Remaining = v
	}
	if v, err := strconv.ParseInt(h.Get("Ratelimit-Reset"), 10, 64); err == nil {
		rl.Reset = time.Unix(v, 0)
	}
	return rl
}

// Response is a successfully decoded Helix response. Request is the
// request that produced it, kept so the next page can be derived.
type Response[R any, D any] struct {
	Data D
	// Pagination is the cursor to the next page. It is empty on the last page.
	Pagination Cursor
	// Total is set by endpoints that report a total count.
	Total     *int64
	RateLimit RateLimit
	Request   R
}

// HasNext reports whether another page is available
func (r *Response[R, D]) HasNext() bool {
	return r != nil && r.Pagination != ""
}
