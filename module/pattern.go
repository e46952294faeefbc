package module

import (
	"context"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// AnalogyFinder scores structural analogies between concepts. Backed by the
// host's concept store; the graph algorithms stay outside the core.
type AnalogyFinder interface {
	// BestAnalogy returns the strongest analogy partner for the focus
	// concept among the candidates, with its score in [0, 1].
	BestAnalogy(focus string, candidates []string) (other string, score float64, ok bool)
}

// ConceptLister exposes the concepts currently held in working memory.
type ConceptLister interface {
	Concepts() []string
}

// PatternModule periodically looks for analogies between the current focus
// and recently active concepts, proposing to explore the strongest one. The
// check runs only every few cycles: analogy search is assumed expensive.
type PatternModule struct {
	BaseModule
	finder   AnalogyFinder
	memory   ConceptLister
	every    int
	minScore float64

	mu    sync.Mutex
	since int
}

// NewPatternModule creates a pattern module that consults the finder every
// `every` cycles (non-positive falls back to 10) and proposes analogies
// scoring at least minScore.
func NewPatternModule(finder AnalogyFinder, memory ConceptLister, every int, minScore float64) *PatternModule {
	if every <= 0 {
		every = 10
	}
	return &PatternModule{
		BaseModule: NewBaseModule("pattern"),
		finder:     finder,
		memory:     memory,
		every:      every,
		minScore:   minScore,
	}
}

// Propose implements core.Module.
func (m *PatternModule) Propose(_ context.Context, snap core.Snapshot) ([]core.Proposal, error) {
	m.mu.Lock()
	m.since++
	due := m.since >= m.every
	if due {
		m.since = 0
	}
	m.mu.Unlock()

	if !due || snap.Focus == "" {
		return nil, nil
	}

	candidates := withoutConcept(m.memory.Concepts(), snap.Focus)
	if len(candidates) == 0 {
		return nil, nil
	}

	other, score, ok := m.finder.BestAnalogy(snap.Focus, candidates)
	if !ok || score < m.minScore {
		return nil, nil
	}

	drives := drivesOrNeutral(snap.Drives)

	return []core.Proposal{{
		Source:   m.Name(),
		Kind:     core.ActionExploreAnalogy,
		Payload:  core.AnalogyPayload{First: snap.Focus, Second: other, Score: score},
		Evidence: clamp01(score),
		Salience: drives.Curiosity,
		Urgency:  0.4,
	}}, nil
}

func withoutConcept(concepts []string, skip string) []string {
	out := make([]string, 0, len(concepts))
	for _, c := range concepts {
		if c != skip {
			out = append(out, c)
		}
	}
	return out
}
