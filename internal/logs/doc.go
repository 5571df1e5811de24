// Package logs reads back the structured run log written by the pipelines,
// supporting last-N retrieval and follow-style polling for the CLI.
package logs
