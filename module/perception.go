package module

import (
	"context"

	"github.com/cognisys/mindspace/core"
)

// PerceptionModule polls an external input source once per cycle and turns
// the event, if any, into a perceive proposal. The event's salience seeds all
// three subscores: strong percepts press harder for attention.
type PerceptionModule struct {
	BaseModule
	source core.InputSource
	known  ConceptLister
}

// NewPerceptionModule creates a perception module reading from the given
// input source. known may be nil; when present it offers the source the pool
// of already known concepts.
func NewPerceptionModule(source core.InputSource, known ConceptLister) *PerceptionModule {
	return &PerceptionModule{BaseModule: NewBaseModule("perception"), source: source, known: known}
}

// Propose implements core.Module.
func (m *PerceptionModule) Propose(_ context.Context, _ core.Snapshot) ([]core.Proposal, error) {
	var available []string
	if m.known != nil {
		available = m.known.Concepts()
	}

	event, ok := m.source.Poll(available)
	if !ok {
		return nil, nil
	}

	salience := clamp01(event.Salience)

	return []core.Proposal{{
		Source:   m.Name(),
		Kind:     core.ActionPerceive,
		Payload:  core.ConceptPayload{Name: event.Concept},
		Evidence: salience,
		Salience: salience,
		Urgency:  clamp01(0.3 + 0.5*salience),
	}}, nil
}
