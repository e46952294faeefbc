package core

import "time"

// HistoryRecord captures the active content of one cycle for analytics and
// for novelty/repetition scoring by modules. Records sharing a ContentID form
// one persistence run (ignition cycle plus surviving cycles).
type HistoryRecord struct {
	Cycle      int
	ContentID  string
	Kind       ActionKind
	Source     string
	Concept    string
	Score      float64
	Ignited    bool
	Activation float64
	When       time.Time
}

// HistoryStore persists the ordered, append-only sequence of past workspace
// contents. The workspace is the sole writer; modules and the host observe
// read-only copies.
type HistoryStore interface {
	// Append adds a record for a completed cycle.
	Append(rec HistoryRecord) error

	// Records returns a defensive copy of all retained records, oldest first.
	Records() []HistoryRecord

	// Recent returns a defensive copy of at most n newest records, oldest
	// first.
	Recent(n int) []HistoryRecord

	// Len returns the number of retained records.
	Len() int
}
