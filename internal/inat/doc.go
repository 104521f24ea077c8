// Package inat is the boundary to the iNaturalist API.
//
// It consumes three logical operations:
//   - paginated leaf-taxon counts by source taxon and region
//     (/observations/species_counts)
//   - batched taxon detail lookup by identifier list (/taxa/{ids})
//   - observation listing by taxon with quality and photo filters
//     (/observations)
//
// The package owns all throttling behavior: counts pagination retries a
// throttled page with exponential backoff up to a bounded attempt count,
// while the observation lookup sleeps a single fixed cooldown and retries
// exactly once. Any other non-success response is fatal and propagates to
// the caller with the offending taxon id and endpoint in the message.
//
// Design decision: Raw responses are normalized into the typed entities of
// the model package in one place (parse.go), so missing-field defaults are
// a single well-tested conversion rather than get-or-default checks
// scattered through the pipeline.
package inat
