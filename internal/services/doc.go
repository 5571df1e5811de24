// Package services holds the cross-cutting error taxonomy shared by the
// modality runners and the orchestrator.
//
// Runner failures are classified with sentinel errors so callers can branch
// on the failure class without parsing messages. The orchestrator converts
// every classified failure into an error-status result; nothing above it
// should need to inspect these errors.
package services
