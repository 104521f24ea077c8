package vocab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// TaxaLookup fetches detail records for a batch of taxon ids.
// Implemented by *inat.Client.
type TaxaLookup interface {
	TaxaDetails(ctx context.Context, ids []int) (map[int]model.TaxonDetail, error)
}

// EnrichStep performs one batched detail lookup for the whole retained
// batch and stores the resulting map on the report.
//
// Design decision: Enrichment runs once per group rather than per taxon
// because the taxa endpoint accepts id batches; one pass keeps the request
// count proportional to top_n/batch_size instead of top_n.
type EnrichStep struct {
	// lookup fetches batched taxon details.
	lookup TaxaLookup

	// logger for structured logging.
	logger *slog.Logger
}

// EnrichStepOption configures an EnrichStep.
type EnrichStepOption func(*EnrichStep)

// WithEnrichLogger sets a custom logger for the enrich step.
func WithEnrichLogger(logger *slog.Logger) EnrichStepOption {
	return func(s *EnrichStep) {
		s.logger = logger
	}
}

// NewEnrichStep creates a new enrichment step over the given lookup.
func NewEnrichStep(lookup TaxaLookup, opts ...EnrichStepOption) *EnrichStep {
	s := &EnrichStep{
		lookup: lookup,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *EnrichStep) Name() string {
	return "enrich"
}

// Do enriches the retained batch. Ids missing from the response stay
// absent from the report's detail map; assembly falls back to the counts
// record's own name and rank for those.
func (s *EnrichStep) Do(ctx context.Context, report *model.GroupReport) error {
	if len(report.Ranked) == 0 {
		s.logger.Debug("skipping enrichment, nothing retained",
			"group", report.Group.Label,
		)
		return nil
	}

	ids := make([]int, len(report.Ranked))
	for i, tc := range report.Ranked {
		ids[i] = tc.TaxonID
	}

	details, err := s.lookup.TaxaDetails(ctx, ids)
	if err != nil {
		return fmt.Errorf("group %q: %w", report.Group.Label, err)
	}
	report.Details = details

	if missing := len(ids) - len(details); missing > 0 {
		s.logger.Warn("some taxa lack enrichment, keeping raw names",
			"group", report.Group.Label,
			"missing", missing,
		)
	}
	return nil
}
