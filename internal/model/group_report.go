package model

import "time"

// GroupReport is the accumulator for one group's pipeline run. Steps mutate
// it in sequence: merge fills Ranked, enrich fills Details, assembly fills
// Entries. The report is scoped to a single group and discarded once the
// artifact is written; no state is carried between groups.
//
// Design decision: We use a single mutable report passed through the
// pipeline rather than per-step return values, so steps stay uniform and
// counters for the run summary accumulate in one place.
type GroupReport struct {
	// Group is the configuration this run was started for.
	Group SourceGroup `json:"group"`

	// Ranked is the retained batch: deduplicated, sorted descending by
	// count, and truncated to Group.TopN.
	Ranked []TaxonCount `json:"ranked,omitempty"`

	// Details maps taxon id to its enrichment record. Ids missing from the
	// map had no enrichment available; assembly falls back to the counts
	// record's own name and rank.
	Details map[int]TaxonDetail `json:"-"`

	// Entries is the final ordered vocabulary, ranking order preserved
	// minus taxa dropped for lacking an example observation.
	Entries []VocabEntry `json:"entries"`

	// Skipped counts taxa dropped because no usable example exists.
	Skipped int `json:"skipped"`

	// StartedAt and FinishedAt bracket the group's pipeline run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performedSteps,omitempty"`
}

// NewGroupReport creates an empty report for the given group.
func NewGroupReport(group SourceGroup) *GroupReport {
	return &GroupReport{
		Group:     group,
		Details:   make(map[int]TaxonDetail),
		Entries:   make([]VocabEntry, 0),
		StartedAt: time.Now(),
	}
}

// Written reports the number of assembled entries.
func (r *GroupReport) Written() int {
	return len(r.Entries)
}

// Duration reports the elapsed time of the group's run.
func (r *GroupReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
