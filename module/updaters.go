package module

import (
	"context"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// WorkingMemory is a small most-recent-first ring of concept names. It is
// not a concept store: just the short buffer of what recently held the
// workspace, used for repetition and analogy heuristics.
type WorkingMemory struct {
	mu       sync.Mutex
	capacity int
	concepts []string
}

// NewWorkingMemory creates a working memory holding at most capacity
// concepts (non-positive falls back to 7).
func NewWorkingMemory(capacity int) *WorkingMemory {
	if capacity <= 0 {
		capacity = 7
	}
	return &WorkingMemory{capacity: capacity}
}

// Touch moves the concept to the front, inserting it if absent and evicting
// the oldest entry past capacity.
func (w *WorkingMemory) Touch(concept string) {
	if concept == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.concepts {
		if c == concept {
			copy(w.concepts[1:i+1], w.concepts[:i])
			w.concepts[0] = concept
			return
		}
	}
	w.concepts = append([]string{concept}, w.concepts...)
	if len(w.concepts) > w.capacity {
		w.concepts = w.concepts[:w.capacity]
	}
}

// Concepts returns a copy, most recent first.
func (w *WorkingMemory) Concepts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.concepts))
	copy(out, w.concepts)
	return out
}

// MemoryUpdater is a passive module: it never proposes, it only feeds
// broadcast concepts into working memory for the next cycle's heuristics.
type MemoryUpdater struct {
	BaseModule
	memory *WorkingMemory
}

// NewMemoryUpdater creates a memory updater writing into the given working
// memory.
func NewMemoryUpdater(memory *WorkingMemory) *MemoryUpdater {
	return &MemoryUpdater{BaseModule: NewBaseModule("memory"), memory: memory}
}

// Propose implements core.Module; the memory updater never proposes.
func (m *MemoryUpdater) Propose(context.Context, core.Snapshot) ([]core.Proposal, error) {
	return nil, nil
}

// OnBroadcast records the broadcast concept in working memory.
func (m *MemoryUpdater) OnBroadcast(content *core.WorkspaceContent, _ int) {
	if content == nil {
		return
	}
	if concept, ok := core.ProposalConcept(content.Proposal); ok {
		m.memory.Touch(concept)
	}
}

// DriveReactor receives the emotional side effects of conscious content. The
// drive system implements it; updates land on the next cycle's snapshot.
type DriveReactor interface {
	OnPercept()
	OnReflect()
}

// EmotionUpdater is a passive module feeding broadcasts back into the drive
// system: percepts relieve understimulation, reflection reduces confusion.
type EmotionUpdater struct {
	BaseModule
	drives DriveReactor
}

// NewEmotionUpdater creates an emotion updater targeting the given reactor.
func NewEmotionUpdater(drives DriveReactor) *EmotionUpdater {
	return &EmotionUpdater{BaseModule: NewBaseModule("emotion"), drives: drives}
}

// Propose implements core.Module; the emotion updater never proposes.
func (m *EmotionUpdater) Propose(context.Context, core.Snapshot) ([]core.Proposal, error) {
	return nil, nil
}

// OnBroadcast routes content kinds to drive updates.
func (m *EmotionUpdater) OnBroadcast(content *core.WorkspaceContent, _ int) {
	if content == nil {
		return
	}
	switch content.Proposal.Kind {
	case core.ActionPerceive:
		m.drives.OnPercept()
	case core.ActionReflect:
		m.drives.OnReflect()
	}
}
