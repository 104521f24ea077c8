package inat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// TaxaDetails fetches the full detail record for each of the given taxon
// ids via the batched /taxa endpoint, requested in the configured locale
// with a region-preference hint so localized common names come back where
// available.
//
// Ids are chunked at the configured batch size to respect request-size
// limits; a politeness delay separates chunk requests. Ids absent from the
// response (e.g. a taxon deleted upstream) are simply missing from the
// returned map: callers fall back to the taxon's already-known name and
// rank instead of failing the run.
func (c *Client) TaxaDetails(ctx context.Context, ids []int) (map[int]model.TaxonDetail, error) {
	details := make(map[int]model.TaxonDetail, len(ids))

	for start := 0; start < len(ids); start += c.taxaBatchSize {
		if start > 0 {
			c.sleep(c.chunkDelay)
		}

		end := start + c.taxaBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		c.logger.Info("requesting taxa details",
			"ids", len(chunk),
			"from", chunk[0],
			"locale", c.locale,
		)

		body, err := c.fetchTaxaChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, raw := range body.Results {
			details[raw.ID] = raw.normalize()
		}
	}

	return details, nil
}

// fetchTaxaChunk fetches one batch of taxon details. Any non-success
// response is fatal; the taxa endpoint gets no throttling retries.
func (c *Client) fetchTaxaChunk(ctx context.Context, ids []int) (*taxaResponse, error) {
	query := url.Values{
		"locale":             {c.locale},
		"preferred_place_id": {strconv.Itoa(c.placeID)},
	}

	resp, err := c.get(ctx, "/taxa/"+joinIDs(ids), query)
	if err != nil {
		return nil, fmt.Errorf("taxa details for %d ids: %w", len(ids), err)
	}

	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp)
		return nil, fmt.Errorf("taxa details for %d ids starting at %d: status %d: %w",
			len(ids), ids[0], resp.StatusCode, ErrUnexpectedStatus)
	}

	var body taxaResponse
	if err := decodeJSON(resp, &body); err != nil {
		return nil, fmt.Errorf("taxa details for %d ids starting at %d: %w", len(ids), ids[0], err)
	}
	return &body, nil
}

// joinIDs renders ids as the comma-separated path segment the taxa
// endpoint expects.
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
