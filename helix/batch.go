package helix

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shurizzle/twitch-api2/auth"
)

// DefaultBatchLimit is the number of requests ReqGetBatch runs at once
// when no limit is given.
const DefaultBatchLimit = 4

// ReqGetBatch executes independent GET requests concurrently, at most limit
// at a time. Responses are returned in the order of reqs. The first error
// cancels the requests not yet started and is returned; responses already
// received stay in the result.
func ReqGetBatch[R RequestGet[D], D any](ctx context.Context, c *Client, reqs []R, token auth.Token, limit int) ([]*Response[R, D], error) {
	results := make([]*Response[R, D], len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			resp, err := ReqGet[R, D](ctx, c, req, token)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	return results, g.Wait()
}
