package helix

import (
	"context"
	"iter"

	"github.com/shurizzle/twitch-api2/auth"
)

// PaginatedGet is a GET request that can be re-issued for another page.
type PaginatedGet[R any, D any] interface {
	RequestGet[D]
	Paginated[R]
}

// NextPage fetches the page after prev. It returns nil and no error when
// prev carries no cursor, which is the end of the result set. prev and its
// request are not modified.
func NextPage[R PaginatedGet[R, D], D any](ctx context.Context, c *Client, prev *Response[R, D], token auth.Token) (*Response[R, D], error) {
	if !prev.HasNext() {
		return nil, nil
	}
	next := prev.Request.WithCursor(prev.Pagination)
	return ReqGet[R, D](ctx, c, next, token)
}

// Pages walks every page starting at req. Iteration ends after the page
// without a cursor, at the first error (yielded with a nil response), or
// when the caller stops ranging. There is no page limit.
//
//	for page, err := range helix.Pages(ctx, client, req, token) {
//		if err != nil {
//			return err
//		}
//		...
//	}
func Pages[R PaginatedGet[R, D], D any](ctx context.Context, c *Client, req R, token auth.Token) iter.Seq2[*Response[R, D], error] {
	return func(yield func(*Response[R, D], error) bool) {
		resp, err := ReqGet[R, D](ctx, c, req, token)
		for {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(resp, nil) || !resp.HasNext() {
				return
			}
			resp, err = NextPage[R, D](ctx, c, resp, token)
		}
	}
}

// CollectAll fetches every page of req and concatenates the data. On
// error the items of the pages fetched so far are returned with it.
func CollectAll[R PaginatedGet[R, []T], T any](ctx context.Context, c *Client, req R, token auth.Token) ([]T, error) {
	var all []T
	for page, err := range Pages[R, []T](ctx, c, req, token) {
		if err != nil {
			return all, err
		}
		all = append(all, page.Data...)
	}
	return all, nil
}
