package core

import (
	"fmt"
	"math"
)

// ActionKind categorizes the action a proposal asks the host to perform.
// The set is closed: the workspace rejects proposals carrying an unknown kind.
type ActionKind int

const (
	// ActionUnknown is the zero value and never valid in a proposal.
	ActionUnknown ActionKind = iota
	// ActionExecuteGoal asks the host to work on the current active goal.
	ActionExecuteGoal
	// ActionSwitchStrategy asks the host to abandon the current goal approach
	// in favor of an alternative.
	ActionSwitchStrategy
	// ActionExplore asks the host to explore a concept.
	ActionExplore
	// ActionReflect asks the host to reflect on recent learning.
	ActionReflect
	// ActionExploreAnalogy asks the host to explore a structural analogy
	// between two concepts.
	ActionExploreAnalogy
	// ActionPerceive asks the host to process an external percept.
	ActionPerceive
)

// String returns the string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionExecuteGoal:
		return "execute_goal"
	case ActionSwitchStrategy:
		return "switch_strategy"
	case ActionExplore:
		return "explore"
	case ActionReflect:
		return "reflect"
	case ActionExploreAnalogy:
		return "explore_analogy"
	case ActionPerceive:
		return "perceive"
	default:
		return "unknown"
	}
}

// Known reports whether the kind is a member of the closed action set.
func (k ActionKind) Known() bool {
	return k > ActionUnknown && k <= ActionPerceive
}

// Proposal is an immutable candidate action offered by a module for one cycle.
// Proposals compete to become the workspace's conscious content. The three
// subscores are module-supplied raw inputs to the attention gate; they must be
// finite and non-negative. An all-zero proposal is legal but only wins when it
// is the sole candidate and the ignition threshold permits.
type Proposal struct {
	// Source identifies the producing module. The workspace fills it with the
	// module's registered name when left empty.
	Source string

	// Kind tags the action variant.
	Kind ActionKind

	// Payload carries action-specific data the workspace routes but does not
	// interpret, except for optional focus matching via ConceptCarrier.
	Payload any

	// Evidence is the strength of the raw case for this proposal.
	Evidence float64

	// Salience is attention-independent prominence, e.g. novelty-derived.
	Salience float64

	// Urgency is the time-pressure factor, e.g. pain-driven.
	Urgency float64
}

// Validate checks the proposal invariants enforced at ingestion: a known
// action kind and finite, non-negative subscores.
func (p Proposal) Validate() error {
	if !p.Kind.Known() {
		return fmt.Errorf("unknown action kind %d", int(p.Kind))
	}
	for _, s := range []struct {
		name  string
		value float64
	}{
		{"evidence", p.Evidence},
		{"salience", p.Salience},
		{"urgency", p.Urgency},
	} {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) {
			return fmt.Errorf("%s is not finite", s.name)
		}
		if s.value < 0 {
			return fmt.Errorf("%s is negative (%v)", s.name, s.value)
		}
	}
	return nil
}

// ConceptCarrier is implemented by payloads that refer to a single concept.
// The attention gate uses it to apply the sustained-focus bias; modules use it
// to track recently visited concepts. Payload types without a meaningful
// primary concept simply don't implement it.
type ConceptCarrier interface {
	Concept() string
}

// ProposalConcept extracts the primary concept from a proposal's payload,
// reporting false when the payload carries none.
func ProposalConcept(p Proposal) (string, bool) {
	if c, ok := p.Payload.(ConceptCarrier); ok && c.Concept() != "" {
		return c.Concept(), true
	}
	return "", false
}

// Goal describes one active host goal as seen by modules. The planning
// heuristics that create and retire goals live outside the core.
type Goal struct {
	Concept  string
	Strategy string
	Failures int
}

// ConceptPayload is the payload for explore and perceive proposals.
type ConceptPayload struct {
	Name string
}

// Concept implements ConceptCarrier.
func (p ConceptPayload) Concept() string { return p.Name }

// GoalPayload is the payload for execute_goal proposals.
type GoalPayload struct {
	Goal Goal
}

// Concept implements ConceptCarrier.
func (p GoalPayload) Concept() string { return p.Goal.Concept }

// SwitchPayload is the payload for switch_strategy proposals.
type SwitchPayload struct {
	Old Goal
	New Goal
}

// Concept implements ConceptCarrier.
func (p SwitchPayload) Concept() string { return p.Old.Concept }

// AnalogyPayload is the payload for explore_analogy proposals.
type AnalogyPayload struct {
	First  string
	Second string
	Score  float64
}

// Concept implements ConceptCarrier.
func (p AnalogyPayload) Concept() string { return p.First }

// ReflectPayload is the payload for reflect proposals.
type ReflectPayload struct {
	// Trigger names what prompted the reflection, e.g. "pain" or "periodic".
	Trigger string
}
