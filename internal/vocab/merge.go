package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// CountsFetcher fetches the full leaf-taxon count sequence for one source
// taxon. Implemented by *inat.Client.
type CountsFetcher interface {
	SpeciesCounts(ctx context.Context, taxonID int) ([]model.TaxonCount, error)
}

// MergeStep fetches counts for every source taxon of a group, merges them
// by taxon id keeping the highest count, and stores the ranked, truncated
// batch on the report.
//
// Design decision: Merging is a separate step because a group can combine
// several source taxa (mosses = Bryophyta + Marchantiophyta) and the
// dedup/rank/truncate semantics are the pipeline's core, worth isolating
// behind a pure function (MergeCounts) for direct testing.
type MergeStep struct {
	// fetcher fetches counts per source taxon.
	fetcher CountsFetcher

	// logger for structured logging.
	logger *slog.Logger
}

// MergeStepOption configures a MergeStep.
type MergeStepOption func(*MergeStep)

// WithMergeLogger sets a custom logger for the merge step.
func WithMergeLogger(logger *slog.Logger) MergeStepOption {
	return func(s *MergeStep) {
		s.logger = logger
	}
}

// NewMergeStep creates a new merge step over the given fetcher.
func NewMergeStep(fetcher CountsFetcher, opts ...MergeStepOption) *MergeStep {
	s := &MergeStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *MergeStep) Name() string {
	return "merge"
}

// Do fetches and merges counts for the report's group. Source taxa are
// processed in configured order; a fetch error for any of them is fatal.
func (s *MergeStep) Do(ctx context.Context, report *model.GroupReport) error {
	var all []model.TaxonCount

	for _, taxonID := range report.Group.TaxonIDs {
		s.logger.Info("fetching leaf taxa",
			"group", report.Group.Label,
			"taxonId", taxonID,
		)

		counts, err := s.fetcher.SpeciesCounts(ctx, taxonID)
		if err != nil {
			return fmt.Errorf("group %q: %w", report.Group.Label, err)
		}

		s.logger.Info("fetched leaf taxa",
			"group", report.Group.Label,
			"taxonId", taxonID,
			"count", len(counts),
		)
		all = append(all, counts...)
	}

	report.Ranked = MergeCounts(all, report.Group.TopN)

	s.logger.Info("merged and ranked",
		"group", report.Group.Label,
		"retained", len(report.Ranked),
		"topN", report.Group.TopN,
	)
	return nil
}

// MergeCounts folds count records into a per-taxon mapping where each taxon
// keeps whichever input record has the strictly highest count (first-seen
// wins exact ties), then returns the values sorted descending by count and
// truncated to topN. Records without a usable taxon id or scientific name
// are discarded during the fold and do not count toward topN.
//
// The fold preserves first-seen insertion order and the sort is stable, so
// identical input always produces identical output order.
func MergeCounts(counts []model.TaxonCount, topN int) []model.TaxonCount {
	index := make(map[int]int, len(counts))
	merged := make([]model.TaxonCount, 0, len(counts))

	for _, tc := range counts {
		if tc.TaxonID == 0 || tc.ScientificName == "" {
			continue
		}
		if i, ok := index[tc.TaxonID]; ok {
			if tc.Count > merged[i].Count {
				merged[i] = tc
			}
			continue
		}
		index[tc.TaxonID] = len(merged)
		merged = append(merged, tc)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})

	if topN > 0 && len(merged) > topN {
		merged = merged[:topN]
	}
	return merged
}
