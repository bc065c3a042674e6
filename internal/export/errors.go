package export

import "fmt"

// SourceUnavailableError reports that a remote fetch could not be
// completed. It aborts the whole export: no partial document is produced.
// Retry and backoff happen below the source boundary, not here.
type SourceUnavailableError struct {
	Op  string // the fetch that failed, e.g. "conversations.history C123"
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Op, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// MalformedRecordError reports a single message entry missing required
// fields. The offending item is dropped with a diagnostic and the export
// continues: one corrupt message never blocks an otherwise-healthy channel.
type MalformedRecordError struct {
	TS     string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.TS == "" {
		return fmt.Sprintf("malformed record: %s", e.Reason)
	}
	return fmt.Sprintf("malformed record %s: %s", e.TS, e.Reason)
}
