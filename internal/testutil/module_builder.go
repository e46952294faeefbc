package testutil

import (
	"context"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// Broadcast captures one OnBroadcast delivery.
type Broadcast struct {
	Cycle   int
	Content *core.WorkspaceContent
}

// ScriptedModule is a core.Module test double. Each Propose call pops the
// next scripted batch (empty once the script is exhausted) and every
// broadcast is recorded for assertions. All methods are safe for concurrent
// use.
type ScriptedModule struct {
	name string

	mu         sync.Mutex
	script     [][]core.Proposal
	proposeErr error
	panicValue any
	calls      int
	broadcasts []Broadcast
}

// NewScriptedModule creates a module that plays back the given per-cycle
// proposal batches in order.
func NewScriptedModule(name string, script ...[]core.Proposal) *ScriptedModule {
	return &ScriptedModule{name: name, script: script}
}

// NewStaticModule creates a module that offers the same batch every cycle.
func NewStaticModule(name string, batch ...core.Proposal) *StaticModule {
	return &StaticModule{name: name, batch: batch}
}

// FailWith makes every subsequent Propose call return err.
func (m *ScriptedModule) FailWith(err error) *ScriptedModule {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposeErr = err
	return m
}

// PanicWith makes every subsequent Propose call panic with v.
func (m *ScriptedModule) PanicWith(v any) *ScriptedModule {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicValue = v
	return m
}

// Name implements core.Module.
func (m *ScriptedModule) Name() string { return m.name }

// Propose implements core.Module.
func (m *ScriptedModule) Propose(_ context.Context, _ core.Snapshot) ([]core.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.panicValue != nil {
		panic(m.panicValue)
	}
	if m.proposeErr != nil {
		return nil, m.proposeErr
	}
	if len(m.script) == 0 {
		return nil, nil
	}
	batch := m.script[0]
	m.script = m.script[1:]
	return batch, nil
}

// OnBroadcast implements core.Module.
func (m *ScriptedModule) OnBroadcast(content *core.WorkspaceContent, cycle int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, Broadcast{Cycle: cycle, Content: content})
}

// ProposeCalls returns how many times Propose ran.
func (m *ScriptedModule) ProposeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Broadcasts returns a copy of all recorded broadcasts.
func (m *ScriptedModule) Broadcasts() []Broadcast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Broadcast, len(m.broadcasts))
	copy(out, m.broadcasts)
	return out
}

// StaticModule offers a fixed batch every cycle and records broadcasts.
type StaticModule struct {
	name string

	mu         sync.Mutex
	batch      []core.Proposal
	broadcasts []Broadcast
}

// Name implements core.Module.
func (m *StaticModule) Name() string { return m.name }

// SetBatch replaces the batch offered on subsequent cycles.
func (m *StaticModule) SetBatch(batch ...core.Proposal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batch = batch
}

// Propose implements core.Module.
func (m *StaticModule) Propose(_ context.Context, _ core.Snapshot) ([]core.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Proposal, len(m.batch))
	copy(out, m.batch)
	return out, nil
}

// OnBroadcast implements core.Module.
func (m *StaticModule) OnBroadcast(content *core.WorkspaceContent, cycle int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, Broadcast{Cycle: cycle, Content: content})
}

// Broadcasts returns a copy of all recorded broadcasts.
func (m *StaticModule) Broadcasts() []Broadcast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Broadcast, len(m.broadcasts))
	copy(out, m.broadcasts)
	return out
}
