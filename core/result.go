package core

// ModuleFault records a module that failed to produce proposals this cycle,
// either by returning an error, panicking, or overrunning the deadline. Faults
// never abort the cycle; they surface through the CycleResult for diagnostics.
type ModuleFault struct {
	Module string
	Err    error
}

// RejectedProposal records a proposal excluded from competition at ingestion,
// together with the reason, so callers can audit module health.
type RejectedProposal struct {
	Proposal Proposal
	Reason   string
}

// CycleResult is what one completed arbitration cycle hands back to the host
// loop. A nil Content with Ignited false is the normal "no conscious content"
// outcome, not an error.
type CycleResult struct {
	// Cycle is the index of the completed cycle.
	Cycle int

	// Content is a copy of the active content after ignition/decay, nil when
	// the workspace ended the cycle idle.
	Content *WorkspaceContent

	// WinnerScore is the gated score of the competition winner, zero when no
	// valid proposal was offered.
	WinnerScore float64

	// Ignited reports whether the winner crossed the ignition threshold.
	Ignited bool

	// Faults lists modules that failed to propose this cycle.
	Faults []ModuleFault

	// Rejections lists malformed proposals excluded from competition.
	Rejections []RejectedProposal
}
