package core

import "context"

// DriveVector is a read snapshot of the host's emotional state, supplied once
// per cycle. All dimensions are normalized to [0, 1]. The workspace never
// mutates it; modules receive the same snapshot the gate sees.
type DriveVector struct {
	Pain       float64
	Curiosity  float64
	Boredom    float64
	Confidence float64
	Confusion  float64
}

// Snapshot is the immutable per-cycle view handed to every module's Propose
// call. All reference fields are copies owned by the receiver: mutating a
// snapshot never affects workspace state or other modules.
type Snapshot struct {
	// Cycle is the zero-based index of the current cycle.
	Cycle int

	// Drives is the host-supplied drive vector, nil on cycles where the host
	// provided none (modules should fall back to neutral defaults).
	Drives *DriveVector

	// Focus is the host's current focus concept, empty when unfocused.
	Focus string

	// Content is a copy of the active workspace content entering this cycle,
	// nil when the workspace is idle.
	Content *WorkspaceContent

	// Goals are the host's active goals, first entry most important.
	Goals []Goal

	// Recent holds the most recent history records, newest last. Modules use
	// it for repetition and novelty heuristics.
	Recent []HistoryRecord
}

// Module is the contract every specialist implements to take part in the
// arbitration cycle. Proposal generation and broadcast consumption are
// distinct methods: OnBroadcast must not enqueue proposals for the cycle that
// delivered it; side effects apply to the next cycle's Propose only.
//
// Propose may be called concurrently with other modules' Propose calls but
// never concurrently with OnBroadcast on the same module. Implementations
// must respect context cancellation; a module that overruns the per-cycle
// proposal deadline is treated as having proposed nothing.
type Module interface {
	// Name returns the stable module identifier. Registration order of names
	// defines competition tie-break precedence.
	Name() string

	// Propose returns zero or more candidate actions for this cycle. Returned
	// batches beyond the configured per-module cap are truncated. Errors and
	// panics are recorded as module faults and treated as empty batches.
	Propose(ctx context.Context, snap Snapshot) ([]Proposal, error)

	// OnBroadcast delivers the cycle's final content (nil when the workspace
	// is idle) exactly once per cycle, after ignition and decay are
	// committed. Panics are recorded as module faults.
	OnBroadcast(content *WorkspaceContent, cycle int)
}

// InputEvent is a percept emitted by an external input source.
type InputEvent struct {
	Concept  string
	Salience float64
}

// InputSource is the pull interface to an external percept generator. Poll
// may consider the supplied pool of already-known concepts when fabricating
// an event; an empty pool leaves the choice to the source.
type InputSource interface {
	Poll(available []string) (InputEvent, bool)
}
