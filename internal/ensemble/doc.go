// Package ensemble combines heterogeneous, possibly-missing per-modality
// predictions into a single subject-level verdict.
//
// The aggregation is an availability-weighted average: each modality that
// holds a prediction for the queried subject contributes its probability
// weighted by its reported discriminative metric, modalities without a match
// are recorded as missing, and a subject unknown to every modality yields an
// explicit "unknown" verdict rather than an error. Partial data never
// prevents a best-effort combined result.
package ensemble
