package module

import (
	"context"

	"github.com/cognisys/mindspace/core"
)

// Planner is the injected strategy collaborator for the goal module. The
// retreat and alternative-goal heuristics live with the host's planning
// subsystem, not here.
type Planner interface {
	// ShouldRetreat reports whether the current approach to the goal has
	// failed enough to abandon.
	ShouldRetreat(g core.Goal) bool

	// AlternativeGoal proposes the replacement when retreating.
	AlternativeGoal(g core.Goal) core.Goal
}

// GoalModule proposes working on the host's most important active goal, or
// switching strategy when the planner says the current approach is failing.
// Silent when no goals are active.
type GoalModule struct {
	BaseModule
	planner Planner
}

// NewGoalModule creates a goal module backed by the given planner. A nil
// planner disables strategy switching.
func NewGoalModule(planner Planner) *GoalModule {
	return &GoalModule{BaseModule: NewBaseModule("goal"), planner: planner}
}

// Propose implements core.Module.
func (m *GoalModule) Propose(_ context.Context, snap core.Snapshot) ([]core.Proposal, error) {
	if len(snap.Goals) == 0 {
		return nil, nil
	}
	goal := snap.Goals[0]

	if m.planner != nil && m.planner.ShouldRetreat(goal) {
		alternative := m.planner.AlternativeGoal(goal)
		return []core.Proposal{{
			Source:   m.Name(),
			Kind:     core.ActionSwitchStrategy,
			Payload:  core.SwitchPayload{Old: goal, New: alternative},
			Evidence: 0.7,
			Salience: 0.5,
			Urgency:  0.6,
		}}, nil
	}

	drives := drivesOrNeutral(snap.Drives)
	focus := focusDrive(drives)

	return []core.Proposal{{
		Source:   m.Name(),
		Kind:     core.ActionExecuteGoal,
		Payload:  core.GoalPayload{Goal: goal},
		Evidence: clamp01(focus * drives.Confidence),
		Salience: focus,
		Urgency:  drives.Confidence,
	}}, nil
}
