package vocab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// familyRank is the designated ancestor rank extracted during assembly.
const familyRank = "family"

// AssembleStep walks the retained batch in ranking order, attaches one
// example observation per taxon, and shapes final vocabulary entries.
// Taxa without a usable example are skipped with a log line; the ranking
// order of the survivors is preserved.
type AssembleStep struct {
	// selector picks one example observation per taxon.
	selector *ExampleSelector

	// logger for structured logging.
	logger *slog.Logger
}

// AssembleStepOption configures an AssembleStep.
type AssembleStepOption func(*AssembleStep)

// WithAssembleLogger sets a custom logger for the assemble step.
func WithAssembleLogger(logger *slog.Logger) AssembleStepOption {
	return func(s *AssembleStep) {
		s.logger = logger
	}
}

// NewAssembleStep creates a new assembly step over the given selector.
func NewAssembleStep(selector *ExampleSelector, opts ...AssembleStepOption) *AssembleStep {
	s := &AssembleStep{
		selector: selector,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AssembleStep) Name() string {
	return "assemble"
}

// Do assembles the group's final entries. A selector error is fatal; a nil
// example is a normal skip.
func (s *AssembleStep) Do(ctx context.Context, report *model.GroupReport) error {
	for _, tc := range report.Ranked {
		example, err := s.selector.Select(ctx, tc.TaxonID)
		if err != nil {
			return fmt.Errorf("group %q: %w", report.Group.Label, err)
		}
		if example == nil {
			s.logger.Info("no usable example observation, skipping taxon",
				"group", report.Group.Label,
				"taxonId", tc.TaxonID,
				"name", tc.ScientificName,
			)
			report.Skipped++
			continue
		}

		detail, enriched := report.Details[tc.TaxonID]
		report.Entries = append(report.Entries, newVocabEntry(tc, detail, enriched, example))
	}

	s.logger.Info("assembled vocabulary",
		"group", report.Group.Label,
		"written", report.Written(),
		"skipped", report.Skipped,
	)
	return nil
}

// newVocabEntry shapes one output entry. When enrichment is missing the
// entry keeps the counts record's own name and rank, and all three family
// fields stay null.
func newVocabEntry(tc model.TaxonCount, detail model.TaxonDetail, enriched bool, example *model.ExampleObservation) model.VocabEntry {
	entry := model.VocabEntry{
		ScientificName:     tc.ScientificName,
		GenusName:          tc.GenusName(),
		Rank:               tc.Rank,
		TaxonID:            tc.TaxonID,
		ObsCount:           tc.Count,
		ExampleObservation: example,
	}

	if tc.CommonName != "" {
		name := tc.CommonName
		entry.SwedishName = &name
	}

	if enriched {
		if detail.Rank != "" {
			entry.Rank = detail.Rank
		}
		if family, ok := detail.AncestorOfRank(familyRank); ok {
			sci := family.Name
			entry.FamilyName = &sci
			entry.FamilyScientificName = &sci
			if family.CommonName != "" {
				common := family.CommonName
				entry.FamilySwedishName = &common
			}
		}
	}

	return entry
}
