package core

// WorkspaceContent is the currently conscious item. It is created only by
// ignition, mutated only by the workspace's decay step, and destroyed when its
// activation reaches the configured floor or a new winner pre-empts it.
type WorkspaceContent struct {
	// ID uniquely identifies this ignition. Persistence cycles keep the same
	// ID, so history records sharing an ID form one persistence run.
	ID string

	// Proposal is the winning proposal that produced this content.
	Proposal Proposal

	// Activation starts at 1.0 on ignition and decreases by the decay step on
	// every cycle the content is not re-ignited.
	Activation float64

	// CyclesAlive counts cycles survived since ignition. Zero on the ignition
	// cycle itself.
	CyclesAlive int
}

// Clone returns an independent copy. The workspace hands clones to modules so
// no module can mutate the live content or observe another module's copy.
func (c *WorkspaceContent) Clone() *WorkspaceContent {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Phase is the coarse workspace state: whether content ignited this cycle, is
// persisting from an earlier ignition, or is absent.
type Phase int

const (
	// PhaseIdle means no conscious content.
	PhaseIdle Phase = iota
	// PhaseIgnited means content ignited on the most recent cycle.
	PhaseIgnited
	// PhasePersisting means content from an earlier ignition is carrying
	// forward under decay.
	PhasePersisting
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIgnited:
		return "ignited"
	case PhasePersisting:
		return "persisting"
	default:
		return "idle"
	}
}
