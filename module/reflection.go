package module

import (
	"context"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// ReflectionModule proposes stepping back to reflect on recent learning,
// triggered by high pain or confusion, or periodically after a fixed number
// of cycles without reflection. A winning reflect broadcast resets the
// interval counter.
type ReflectionModule struct {
	BaseModule
	interval int

	mu        sync.Mutex
	sinceLast int
}

// NewReflectionModule creates a reflection module that fires at least every
// interval cycles. Non-positive intervals fall back to 15.
func NewReflectionModule(interval int) *ReflectionModule {
	if interval <= 0 {
		interval = 15
	}
	return &ReflectionModule{BaseModule: NewBaseModule("reflection"), interval: interval}
}

// Propose implements core.Module.
func (m *ReflectionModule) Propose(_ context.Context, snap core.Snapshot) ([]core.Proposal, error) {
	m.mu.Lock()
	m.sinceLast++
	since := m.sinceLast
	m.mu.Unlock()

	drives := drivesOrNeutral(snap.Drives)
	distress := drives.Pain > 0.7 || drives.Confusion > 0.7
	if !distress && since < m.interval {
		return nil, nil
	}

	trigger := "periodic"
	if distress {
		trigger = "pain"
	}
	urgency := clamp01((drives.Pain + drives.Confusion) / 2)

	return []core.Proposal{{
		Source:   m.Name(),
		Kind:     core.ActionReflect,
		Payload:  core.ReflectPayload{Trigger: trigger},
		Evidence: urgency,
		Salience: 0.5,
		Urgency:  urgency,
	}}, nil
}

// OnBroadcast resets the interval counter when reflection holds the
// workspace.
func (m *ReflectionModule) OnBroadcast(content *core.WorkspaceContent, _ int) {
	if content == nil || content.Proposal.Kind != core.ActionReflect {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinceLast = 0
}
