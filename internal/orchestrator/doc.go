// Package orchestrator runs all modality pipelines in a fixed sequence and
// collects their results.
//
// Failures are contained at the runner boundary: a runner error or panic
// becomes an error-status result for that module and the batch continues.
// The output store is guarded by a file lock so two orchestrator runs never
// interleave writes, and every run is recorded in the run ledger.
package orchestrator
