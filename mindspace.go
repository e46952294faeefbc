// Package mindspace provides a high-level façade over the workspace
// arbitration engine and its surrounding services (drive system, input
// sources, specialist modules, history & logging) for building
// global-workspace style cognitive loops. Most applications interact with
// this package by:
//  1. Creating a Mindspace via New() (optionally overriding the default
//     drive system, history store or configuration)
//  2. Registering one or more specialist modules (goal, exploration,
//     reflection, pattern, perception, or custom core.Module
//     implementations)
//  3. Stepping the loop with RunCycle, letting the façade assemble the
//     per-cycle frame from the drive system and apply decay between cycles
//
// The façade delegates arbitration to workspace.Workspace while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing.
package mindspace

import (
	"context"

	"github.com/cognisys/mindspace/core"
	"github.com/cognisys/mindspace/drive"
	"github.com/cognisys/mindspace/logging"
	"github.com/cognisys/mindspace/workspace"
)

// Options configures the Mindspace instance.
type Options struct {
	// Config contains the arbitration policy constants (ignition threshold,
	// decay step, gate weights). Defaults to workspace.DefaultConfig.
	Config workspace.Config

	// Drives supplies the motivational state folded into every cycle's
	// frame. Defaults to a fresh drive.System.
	Drives *drive.System

	// History persists the per-cycle winner records (defaults to the
	// workspace's bounded in-memory store if nil).
	History core.HistoryStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Mindspace is the high-level façade aggregating the workspace engine and
// the drive system.
type Mindspace struct {
	opts      Options
	workspace *workspace.Workspace
	drives    *drive.System
}

// New creates a new Mindspace instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*Mindspace, error) {
	opts := Options{
		Config: workspace.DefaultConfig,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Drives == nil {
		opts.Drives = drive.NewSystem()
	}

	ws, err := workspace.New(func(o *workspace.Options) {
		o.Config = opts.Config
		o.History = opts.History
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &Mindspace{opts: opts, workspace: ws, drives: opts.Drives}, nil
}

// RegisterModule adds a specialist module to the underlying workspace.
// Registration order defines competition tie-break precedence.
func (m *Mindspace) RegisterModule(mod core.Module) { m.workspace.Register(mod) }

// Drives exposes the drive system so hosts can record successes, failures
// and exploration outcomes between cycles.
func (m *Mindspace) Drives() *drive.System { return m.drives }

// Workspace exposes the underlying arbitration engine for hosts needing
// frame-level control.
func (m *Mindspace) Workspace() *workspace.Workspace { return m.workspace }

// RunCycle executes one arbitration cycle: it snapshots the drive vector,
// assembles the frame with the given focus and goals, runs the workspace
// cycle, and applies one step of natural drive decay afterwards.
func (m *Mindspace) RunCycle(ctx context.Context, focus string, goals []core.Goal) (core.CycleResult, error) {
	drives := m.drives.Vector()
	result, err := m.workspace.RunCycle(ctx, workspace.Frame{
		Drives: &drives,
		Focus:  focus,
		Goals:  goals,
	})
	if err != nil {
		return core.CycleResult{}, err
	}
	m.drives.Decay(1)
	return result, nil
}

// Current returns a copy of the active conscious content, nil when idle.
func (m *Mindspace) Current() *core.WorkspaceContent { return m.workspace.Current() }

// Phase reports the workspace's coarse state machine position.
func (m *Mindspace) Phase() core.Phase { return m.workspace.Phase() }

// Stats summarizes ignition behavior from the recorded history.
func (m *Mindspace) Stats() workspace.Stats { return m.workspace.Stats() }

// History exposes the history store for read access.
func (m *Mindspace) History() core.HistoryStore { return m.workspace.History() }
