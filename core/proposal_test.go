package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionKindString(t *testing.T) {
	cases := map[ActionKind]string{
		ActionExecuteGoal:    "execute_goal",
		ActionSwitchStrategy: "switch_strategy",
		ActionExplore:        "explore",
		ActionReflect:        "reflect",
		ActionExploreAnalogy: "explore_analogy",
		ActionPerceive:       "perceive",
		ActionUnknown:        "unknown",
		ActionKind(99):       "unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestActionKindKnown(t *testing.T) {
	assert.False(t, ActionUnknown.Known())
	assert.False(t, ActionKind(99).Known())
	assert.True(t, ActionExecuteGoal.Known())
	assert.True(t, ActionPerceive.Known())
}

func TestProposalValidate(t *testing.T) {
	valid := Proposal{Source: "test", Kind: ActionExplore, Evidence: 0.5, Salience: 0.2, Urgency: 0}
	assert.NoError(t, valid.Validate())

	// All-zero subscores are legal.
	zero := Proposal{Source: "test", Kind: ActionReflect}
	assert.NoError(t, zero.Validate())

	tests := []struct {
		name     string
		proposal Proposal
	}{
		{"unknown kind", Proposal{Kind: ActionUnknown, Evidence: 1}},
		{"negative evidence", Proposal{Kind: ActionExplore, Evidence: -0.1}},
		{"negative salience", Proposal{Kind: ActionExplore, Salience: -1}},
		{"negative urgency", Proposal{Kind: ActionExplore, Urgency: -0.5}},
		{"nan evidence", Proposal{Kind: ActionExplore, Evidence: math.NaN()}},
		{"inf salience", Proposal{Kind: ActionExplore, Salience: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.proposal.Validate())
		})
	}
}

func TestProposalConcept(t *testing.T) {
	p := Proposal{Kind: ActionExplore, Payload: ConceptPayload{Name: "entropy"}}
	concept, ok := ProposalConcept(p)
	assert.True(t, ok)
	assert.Equal(t, "entropy", concept)

	p = Proposal{Kind: ActionExecuteGoal, Payload: GoalPayload{Goal: Goal{Concept: "gravity"}}}
	concept, ok = ProposalConcept(p)
	assert.True(t, ok)
	assert.Equal(t, "gravity", concept)

	p = Proposal{Kind: ActionExploreAnalogy, Payload: AnalogyPayload{First: "orbit", Second: "electron"}}
	concept, ok = ProposalConcept(p)
	assert.True(t, ok)
	assert.Equal(t, "orbit", concept)

	// Reflect payloads carry no concept.
	p = Proposal{Kind: ActionReflect, Payload: ReflectPayload{Trigger: "periodic"}}
	_, ok = ProposalConcept(p)
	assert.False(t, ok)

	// Nil payload carries no concept.
	_, ok = ProposalConcept(Proposal{Kind: ActionExplore})
	assert.False(t, ok)
}
