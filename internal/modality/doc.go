// Package modality defines the shared data model for the five research
// pipelines: per-run results, per-subject predictions, and the fixed
// execution order.
//
// A Result is created once per runner invocation and is immutable afterward;
// the ensemble aggregator and the output store only read it. Predictions use
// the binary AD/CN target with the probability of the AD class.
package modality
