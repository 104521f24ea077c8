package inat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// observationsPath is the record-listing endpoint.
const observationsPath = "/observations"

// SearchObservations lists photo-bearing, research-grade observations for
// one taxon, most recent first. When regionScoped is true the query is
// restricted to the configured place; the example selector calls this
// region-scoped first and falls back to a global query.
//
// A throttling response sleeps the fixed cooldown once and retries the
// same request exactly once; a second throttling response is fatal. This
// single-shot policy is deliberately simpler than the counts backoff: the
// lookup runs once per retained taxon, so one long cooldown is cheaper
// than an escalating ladder.
func (c *Client) SearchObservations(ctx context.Context, taxonID int, regionScoped bool) ([]model.Observation, error) {
	query := url.Values{
		"taxon_id":      {strconv.Itoa(taxonID)},
		"photos":        {"true"},
		"order":         {"desc"},
		"order_by":      {"created_at"},
		"quality_grade": {"research"},
		"per_page":      {"1"},
	}
	if regionScoped {
		query.Set("place_id", strconv.Itoa(c.placeID))
	}

	c.logger.Debug("requesting observations",
		"taxonId", taxonID,
		"regionScoped", regionScoped,
	)

	retried := false
	for {
		resp, err := c.get(ctx, observationsPath, query)
		if err != nil {
			return nil, fmt.Errorf("observations for taxon %d: %w", taxonID, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drainAndClose(resp)

			if retried {
				return nil, fmt.Errorf("observations for taxon %d: throttled twice: %w",
					taxonID, ErrRetryBudgetExceeded)
			}
			retried = true

			c.logger.Warn("throttled during observation lookup, cooling down",
				"taxonId", taxonID,
				"wait", c.cooldown,
			)
			c.sleep(c.cooldown)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			drainAndClose(resp)
			return nil, fmt.Errorf("observations for taxon %d: status %d: %w",
				taxonID, resp.StatusCode, ErrUnexpectedStatus)
		}

		var body observationsResponse
		if err := decodeJSON(resp, &body); err != nil {
			return nil, fmt.Errorf("observations for taxon %d: %w", taxonID, err)
		}

		out := make([]model.Observation, 0, len(body.Results))
		for _, raw := range body.Results {
			out = append(out, raw.normalize())
		}
		return out, nil
	}
}
