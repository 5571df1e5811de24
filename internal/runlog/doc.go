// Package runlog persists orchestrator run history in SQLite.
//
// Each full pipeline run gets one row recording when it started and
// finished, which data root it processed, and the final status of every
// module. The database is an operational history, not a source of truth for
// results; those live in the output store.
package runlog
