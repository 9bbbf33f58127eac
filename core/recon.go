package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Log entry reasons.
const (
	ReasonParseError    = "PARSE_ERROR"
	ReasonTotalMismatch = "TOTAL_MISMATCH"
	ReasonOverflow      = "HAS_PRODUCT_17_25"
	ReasonSummary       = "SUMMARY"
)

// KV is one extra key/value pair on a log entry; extras keep their insertion
// order when rendered.
type KV struct {
	Key   string
	Value string
}

// LogEntry is a single reconciliation event: a reason, the base identity
// fields of the record it concerns, and optional extras.
type LogEntry struct {
	Reason string
	Record Record
	Extra  []KV
}

// Line renders the entry in the log file format:
// Reason=<kind>,Serial No=...,Order No=...,...,<extra>=<value>,...
func (e LogEntry) Line() string {
	parts := []string{"Reason=" + e.Reason}
	for _, f := range baseFields {
		parts = append(parts, f+"="+e.Record.Get(f))
	}
	for _, kv := range e.Extra {
		parts = append(parts, kv.Key+"="+kv.Value)
	}
	return strings.Join(parts, ",")
}

// ReconLog accumulates reconciliation entries in order. It is append-only;
// nothing in the run ever removes or reorders an entry.
type ReconLog struct {
	entries []LogEntry
}

// Add appends an entry.
func (l *ReconLog) Add(reason string, rec Record, extra ...KV) {
	l.entries = append(l.entries, LogEntry{Reason: reason, Record: rec, Extra: extra})
}

// Entries returns the accumulated entries in order.
func (l *ReconLog) Entries() []LogEntry {
	return l.entries
}

// Len returns the number of entries.
func (l *ReconLog) Len() int {
	return len(l.entries)
}

// AppendTo writes the entries to path, one line each, appending to any
// existing file rather than truncating it. Parent directories are created.
// Writing an empty log is a no-op.
func (l *ReconLog) AppendTo(path string) (err error) {
	if len(l.entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", closeErr)
		}
	}()

	for _, e := range l.entries {
		if _, err := fmt.Fprintln(f, e.Line()); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}
