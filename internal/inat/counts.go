package inat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// speciesCountsPath is the paginated leaf-taxon counts endpoint.
const speciesCountsPath = "/observations/species_counts"

// SpeciesCounts fetches the full sequence of leaf-taxon count records for
// one source taxon in the configured region, ordered by descending
// observation count.
//
// Pagination stops on the first of: an empty page, the server-reported
// total being exhausted (page*perPage >= total), or the configured page
// cap. The cap is a deliberate partial-result policy: a very large taxon
// is under-sampled rather than fetched unboundedly.
//
// A throttling response retries the same page with exponential backoff up
// to the retry budget; exceeding the budget, or any other non-success
// response, is fatal for the whole run.
func (c *Client) SpeciesCounts(ctx context.Context, taxonID int) ([]model.TaxonCount, error) {
	var out []model.TaxonCount

	for page := 1; ; page++ {
		if page > c.maxPages {
			c.logger.Info("reached page cap, stopping early",
				"taxonId", taxonID,
				"maxPages", c.maxPages,
			)
			break
		}

		c.logger.Info("requesting species counts",
			"taxonId", taxonID,
			"placeId", c.placeID,
			"page", page,
			"perPage", c.perPage,
		)

		body, err := c.fetchCountsPage(ctx, taxonID, page)
		if err != nil {
			return nil, err
		}

		if len(body.Results) == 0 {
			break
		}
		for _, raw := range body.Results {
			out = append(out, raw.normalize())
		}

		if page*c.perPage >= body.TotalResults {
			break
		}

		// Still be gentle between pages.
		c.sleep(c.pageDelay)
	}

	return out, nil
}

// fetchCountsPage fetches a single counts page, retrying the same page on
// throttling responses per the client's retry policy.
func (c *Client) fetchCountsPage(ctx context.Context, taxonID, page int) (*speciesCountsResponse, error) {
	query := url.Values{
		"place_id":   {strconv.Itoa(c.placeID)},
		"taxon_id":   {strconv.Itoa(taxonID)},
		"per_page":   {strconv.Itoa(c.perPage)},
		"page":       {strconv.Itoa(page)},
		"verifiable": {"true"},
		"locale":     {c.locale},
		"order_by":   {"observations_count"},
		"order":      {"desc"},
	}

	attempt := 0
	for {
		resp, err := c.get(ctx, speciesCountsPath, query)
		if err != nil {
			return nil, fmt.Errorf("species counts for taxon %d page %d: %w", taxonID, page, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drainAndClose(resp)

			attempt++
			if attempt > c.retry.MaxAttempts {
				return nil, fmt.Errorf("species counts for taxon %d page %d: exceeded %d retries: %w",
					taxonID, page, c.retry.MaxAttempts, ErrRetryBudgetExceeded)
			}

			wait := c.retry.Backoff(attempt)
			c.logger.Warn("throttled, backing off",
				"taxonId", taxonID,
				"page", page,
				"attempt", attempt,
				"wait", wait,
			)
			c.sleep(wait)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			drainAndClose(resp)
			return nil, fmt.Errorf("species counts for taxon %d page %d: status %d: %w",
				taxonID, page, resp.StatusCode, ErrUnexpectedStatus)
		}

		var body speciesCountsResponse
		if err := decodeJSON(resp, &body); err != nil {
			return nil, fmt.Errorf("species counts for taxon %d page %d: %w", taxonID, page, err)
		}
		return &body, nil
	}
}
