// Package logging constructs the slog loggers used across tangle.
//
// Two output formats are supported: a compact console format for interactive
// use and line-delimited JSON for machine consumption. Attr helpers keep
// structured keys consistent between packages.
package logging
