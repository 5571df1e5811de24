// Package runner executes the five modality pipelines against a data root.
//
// Every runner follows the same contract: validate that the modality's
// expected input directory exists, then either invoke the external research
// project as a subprocess or synthesize deterministic demo output, and always
// persist its summary (and predictions, when produced) to the output store
// before returning. Input or tool failures become error-status results, never
// returned errors; only persistence faults surface as errors for the
// orchestrator to contain.
//
// The synthesis fallback is selected by the simulate_if_missing setting and
// by the presence of the external project checkout, so a machine with the
// real pipelines installed runs them without any code change.
package runner
