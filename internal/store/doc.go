// Package store persists pipeline outputs in a directory-based key-value
// layout: one JSON summary and one predictions CSV per module, a combined
// aggregate_results.json per orchestrator run, and one report file per
// queried subject.
//
// All writes go through a temp file plus rename so a concurrent reader never
// observes a truncated file. CSV reads are best-effort: rows that fail to
// parse are dropped rather than failing the load, keeping partial data from
// ever blocking an ensemble result.
package store
