package model

import "time"

// RunRecord is the persisted summary of one full pipeline run, stored in the
// run-history database after all groups complete.
type RunRecord struct {
	// ID is the database row id, zero before the record is saved.
	ID int64 `json:"id"`

	// StartedAt and FinishedAt bracket the whole run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Groups holds one summary row per processed group, in run order.
	Groups []GroupRunRecord `json:"groups"`
}

// GroupRunRecord is the persisted per-group summary within a run.
type GroupRunRecord struct {
	// Label is the group label.
	Label string `json:"label"`

	// Retained is the size of the retained batch after merge and truncate.
	Retained int `json:"retained"`

	// Written is the number of entries in the group's artifact.
	Written int `json:"written"`

	// Skipped is the number of taxa dropped for lacking an example.
	Skipped int `json:"skipped"`
}

// EntryCount sums the written entries across all groups.
func (r RunRecord) EntryCount() int {
	var total int
	for _, g := range r.Groups {
		total += g.Written
	}
	return total
}

// NewRunRecordFromReports builds a RunRecord from per-group reports.
func NewRunRecordFromReports(startedAt time.Time, reports []*GroupReport) RunRecord {
	run := RunRecord{
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Groups:     make([]GroupRunRecord, 0, len(reports)),
	}
	for _, report := range reports {
		run.Groups = append(run.Groups, GroupRunRecord{
			Label:    report.Group.Label,
			Retained: len(report.Ranked),
			Written:  report.Written(),
			Skipped:  report.Skipped,
		})
	}
	return run
}
