// Package ledger implements the compliance ledgers backing the chat
// application. Each ledger owns one JSON document under the data directory,
// loads it on startup, seeds a default catalog when empty, and rewrites the
// whole document after every mutation.
package ledger

import "time"

// timestampLayout matches the ISO-8601 local timestamps used across every
// ledger document.
const timestampLayout = "2006-01-02T15:04:05.000000"

func timestamp() string {
	return time.Now().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
