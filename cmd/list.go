package cmd

import (
	"context"
	"fmt"

	"github.com/shurizzle/twitch-api2/filter"
	"github.com/shurizzle/twitch-api2/helix"
)

// fetchFiltered walks up to --max-pages pages of req and applies --filter
// to the collected records.
func fetchFiltered[R helix.PaginatedGet[R, []T], T any](ctx context.Context, req R) ([]T, error) {
	var records []T
	pages := 0
	for page, err := range helix.Pages[R, []T](ctx, helixClient, req, token) {
		if err != nil {
			return nil, err
		}
		records = append(records, page.Data...)
		pages++
		if maxPages > 0 && pages >= maxPages {
			break
		}
	}

	logger.Debug().Int("pages", pages).Int("records", len(records)).Msg("Fetched records")

	expression := resolveFilter(filterExpr)
	matches, err := filter.Apply(ctx, compiler, expression, records)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if expression != "" {
		logger.Info().Str("filter", expression).Int("matched", len(matches)).Int("total", len(records)).Msg("Applied filter")
	}
	return matches, nil
}
