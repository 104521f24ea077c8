// Package vocab provides the aggregation-and-enrichment pipeline that turns
// raw API count records into a group's vocabulary.
//
// One group runs through three steps in sequence: merge (fetch counts per
// source taxon, deduplicate by taxon id keeping the highest count, rank and
// truncate), enrich (one batched detail lookup for the retained batch), and
// assemble (per-taxon example-observation selection and output shaping).
// Each step receives the group's accumulating report and can modify it.
//
// Design decision: We use a pipeline of steps instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context between steps
//
// Execution is strictly sequential: steps never fan out, and a step error
// aborts the group's run immediately.
package vocab
