package module

import (
	"context"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// TargetSource supplies exploration targets. Typically backed by the host's
// concept store; the selection heuristics stay outside the core.
type TargetSource interface {
	// ExplorationTarget picks a concept worth exploring given the current
	// focus, skipping the supplied recently visited concepts.
	ExplorationTarget(focus string, avoid []string) (string, bool)
}

// ExplorationModule proposes exploring a concept when the drives favor
// novelty seeking or no goals demand attention. It tracks its own recently
// broadcast exploration targets to avoid immediately revisiting them.
type ExplorationModule struct {
	BaseModule
	targets TargetSource

	mu     sync.Mutex
	recent []string
	limit  int
}

// NewExplorationModule creates an exploration module backed by the given
// target source.
func NewExplorationModule(targets TargetSource) *ExplorationModule {
	return &ExplorationModule{BaseModule: NewBaseModule("exploration"), targets: targets, limit: 5}
}

// Propose implements core.Module.
func (m *ExplorationModule) Propose(_ context.Context, snap core.Snapshot) ([]core.Proposal, error) {
	drives := drivesOrNeutral(snap.Drives)
	exploration := explorationDrive(drives)

	shouldExplore := drives.Boredom > 0.7 || exploration > 0.6
	if !shouldExplore && len(snap.Goals) > 0 {
		return nil, nil
	}

	m.mu.Lock()
	avoid := make([]string, len(m.recent))
	copy(avoid, m.recent)
	m.mu.Unlock()

	target, ok := m.targets.ExplorationTarget(snap.Focus, avoid)
	if !ok {
		return nil, nil
	}

	return []core.Proposal{{
		Source:   m.Name(),
		Kind:     core.ActionExplore,
		Payload:  core.ConceptPayload{Name: target},
		Evidence: clamp01((exploration + drives.Boredom) / 2),
		Salience: exploration,
		Urgency:  drives.Boredom,
	}}, nil
}

// OnBroadcast remembers won exploration targets so the next cycles pick
// fresh ones.
func (m *ExplorationModule) OnBroadcast(content *core.WorkspaceContent, _ int) {
	if content == nil || content.Proposal.Kind != core.ActionExplore {
		return
	}
	concept, ok := core.ProposalConcept(content.Proposal)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.recent {
		if c == concept {
			return
		}
	}
	m.recent = append(m.recent, concept)
	if len(m.recent) > m.limit {
		m.recent = m.recent[len(m.recent)-m.limit:]
	}
}
