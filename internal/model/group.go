package model

// SourceGroup is one configured vocabulary bucket, e.g. "insects".
// A group can draw leaf taxa from more than one source taxon; mosses, for
// example, combine Bryophyta and Marchantiophyta into a single list.
//
// SourceGroup values are read-only inputs to the pipeline: they are loaded
// once from the configuration file and never mutated at runtime.
type SourceGroup struct {
	// Label is the group key. It names the output artifact
	// (e.g. "insects" -> insects_genera_sweden.json).
	Label string `yaml:"label" json:"label"`

	// TaxonIDs are the iNaturalist taxon identifiers to fetch leaf-taxon
	// counts for. They are processed in configured order.
	TaxonIDs []int `yaml:"taxonIds" json:"taxonIds"`

	// TopN is the number of ranked taxa to retain for this group.
	// Entries dropped later for lacking a usable example observation are
	// not replaced, so the final artifact may hold fewer than TopN entries.
	TopN int `yaml:"topN" json:"topN"`
}
