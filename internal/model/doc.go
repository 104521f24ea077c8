// Package model defines the core data structures used throughout vocabbuild.
//
// This package contains the following main types:
//   - SourceGroup: A configured vocabulary bucket (label, source taxa, top_n)
//   - TaxonCount: A normalized leaf-taxon count record from the API
//   - TaxonDetail: The enrichment record with the taxon's ancestor chain
//   - VocabEntry: The final output unit written to per-group JSON artifacts
//   - GroupReport: The accumulator a pipeline run mutates for one group
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (inat, vocab, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for artifact output and
// database storage.
package model
