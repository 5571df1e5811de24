// Package preflight validates the environment before a pipeline run:
// directory access, expected data layout, and the external interpreters the
// pipelines shell out to.
package preflight
