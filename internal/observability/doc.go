// Package observability provides a JSONL side-channel event log for the
// chat pipeline, metrics derived from it, and alerting on operational
// conditions such as repeated ledger persistence failures.
package observability
