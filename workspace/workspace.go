// Package workspace implements the arbitration engine: once per cycle it
// collects candidate proposals from every registered module, gates them
// against the current drive vector, runs a winner-take-all competition,
// decides ignition, applies persistence decay, and broadcasts the resulting
// conscious content back to all modules.
//
// Arbitration is logically single-threaded: collection, gating, competition,
// ignition, decay and broadcast form one atomic unit of work per RunCycle
// call. Proposal generation within a cycle fans out concurrently across
// modules and joins before competition; broadcast completes before RunCycle
// returns, so no module ever observes a half-committed cycle.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cognisys/mindspace/core"
	"github.com/cognisys/mindspace/gate"
	"github.com/cognisys/mindspace/history"
	"github.com/cognisys/mindspace/logging"
)

// snapshotHistoryDepth is how many recent history records each module sees.
const snapshotHistoryDepth = 8

// Options configures a Workspace instance using the functional options
// pattern. All fields have defaults suitable for tests and local runs.
type Options struct {
	// Config contains the arbitration policy constants. Defaults to
	// DefaultConfig; validated at construction.
	Config Config

	// History persists the per-cycle winner records. Defaults to an
	// in-memory store bounded by Config.HistoryLimit.
	History core.HistoryStore

	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Workspace is the orchestrator. It owns the registered module set, the
// current content and the cycle counter; modules only ever see snapshots.
type Workspace struct {
	cfg     Config
	hist    core.HistoryStore
	logger  logging.Logger
	modules []core.Module

	// mu serializes RunCycle: one cycle commits fully before the next
	// begins. It also guards current/cycle for the read-only accessors.
	mu      sync.Mutex
	current *core.WorkspaceContent
	ignited bool // whether current ignited on the most recent cycle
	cycle   int
}

// New creates a Workspace with optional overrides. The configuration is
// validated; invalid values fail construction rather than being clamped.
func New(optFns ...func(o *Options)) (*Workspace, error) {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.History == nil {
		opts.History = history.NewInMemoryStore(opts.Config.HistoryLimit)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Workspace{cfg: opts.Config, hist: opts.History, logger: opts.Logger}, nil
}

// Register adds a module. Registration order defines competition tie-break
// precedence: earlier modules win exact score ties. Register before the first
// RunCycle; registration during a run is safe but shifts tie-break order for
// subsequent cycles only.
func (w *Workspace) Register(m core.Module) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modules = append(w.modules, m)
}

// Frame carries the host-supplied inputs for one cycle: the drive vector
// snapshot, the current focus concept and the active goals. The workspace
// never mutates the frame.
type Frame struct {
	Drives *core.DriveVector
	Focus  string
	Goals  []core.Goal
}

// candidate pairs a validated proposal with its gated score. Candidates are
// kept in collection order (module registration order, then batch order), so
// a strict-greater maximum scan implements the deterministic tie-break.
type candidate struct {
	proposal core.Proposal
	score    float64
}

// RunCycle executes one full arbitration cycle and returns its result. A nil
// result Content with Ignited false means no conscious content this cycle,
// which is a normal outcome. The returned error is non-nil only for
// infrastructure failures (history append); module faults are reported in
// the result instead.
func (w *Workspace) RunCycle(ctx context.Context, frame Frame) (core.CycleResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cycle := w.cycle
	result := core.CycleResult{Cycle: cycle}

	snap := w.snapshotLocked(cycle, frame)

	batches, faults := w.collect(ctx, snap)
	result.Faults = faults

	candidates, rejections := w.gateAndValidate(batches, frame)
	result.Rejections = rejections

	winner, winnerScore, ok := compete(candidates)
	if ok {
		result.WinnerScore = winnerScore
		w.logger.Debug("competition resolved cycle=%d candidates=%d winner=%s kind=%s score=%.3f",
			cycle, len(candidates), winner.Source, winner.Kind, winnerScore)
	}

	switch {
	case ok && winnerScore >= w.cfg.IgnitionThreshold:
		preempted := w.current != nil
		w.current = &core.WorkspaceContent{
			ID:         uuid.NewString(),
			Proposal:   winner,
			Activation: 1.0,
		}
		w.ignited = true
		result.Ignited = true
		w.logger.Info("ignition cycle=%d id=%s kind=%s score=%.3f preempted=%t",
			cycle, w.current.ID, winner.Kind, winnerScore, preempted)

	case w.current != nil:
		w.current.Activation -= w.cfg.DecayStep
		w.current.CyclesAlive++
		w.ignited = false
		if w.current.Activation <= w.cfg.ActivationFloor {
			w.logger.Debug("content cleared cycle=%d id=%s activation=%.3f", cycle, w.current.ID, w.current.Activation)
			w.current = nil
		} else {
			w.logger.Debug("persistence cycle=%d id=%s activation=%.3f alive=%d",
				cycle, w.current.ID, w.current.Activation, w.current.CyclesAlive)
		}

	default:
		w.ignited = false
		w.logger.Debug("no conscious content cycle=%d", cycle)
	}

	if w.current != nil {
		if err := w.appendHistoryLocked(cycle, winnerScore); err != nil {
			return core.CycleResult{}, fmt.Errorf("append history: %w", err)
		}
	}

	result.Faults = append(result.Faults, w.broadcast(cycle)...)

	result.Content = w.current.Clone()
	w.cycle++
	return result, nil
}

// snapshotLocked builds the immutable per-cycle view shared by all modules.
func (w *Workspace) snapshotLocked(cycle int, frame Frame) core.Snapshot {
	goals := make([]core.Goal, len(frame.Goals))
	copy(goals, frame.Goals)

	var drives *core.DriveVector
	if frame.Drives != nil {
		d := *frame.Drives
		drives = &d
	}

	return core.Snapshot{
		Cycle:   cycle,
		Drives:  drives,
		Focus:   frame.Focus,
		Content: w.current.Clone(),
		Goals:   goals,
		Recent:  w.hist.Recent(snapshotHistoryDepth),
	}
}

// collect fans Propose out across all modules concurrently and joins before
// returning. Batches come back indexed by registration order so the flatten
// step preserves the deterministic tie-break ordering. A module error, panic
// or deadline overrun yields an empty batch plus a recorded fault.
func (w *Workspace) collect(ctx context.Context, snap core.Snapshot) ([][]core.Proposal, []core.ModuleFault) {
	if w.cfg.ProposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.ProposeTimeout)
		defer cancel()
	}

	batches := make([][]core.Proposal, len(w.modules))
	faultSlots := make([]*core.ModuleFault, len(w.modules))

	var g errgroup.Group
	for i, m := range w.modules {
		i, m := i, m
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					faultSlots[i] = &core.ModuleFault{Module: m.Name(), Err: fmt.Errorf("propose panicked: %v", r)}
				}
			}()

			// Each module gets its own snapshot copy so concurrent readers
			// cannot observe each other's mutations.
			proposals, perr := m.Propose(ctx, cloneSnapshot(snap))
			if perr != nil {
				faultSlots[i] = &core.ModuleFault{Module: m.Name(), Err: perr}
				return nil
			}
			if len(proposals) > w.cfg.MaxProposalsPerModule {
				proposals = proposals[:w.cfg.MaxProposalsPerModule]
			}
			batches[i] = proposals
			return nil
		})
	}
	_ = g.Wait() // faults are reported via slots, never as errors

	var faults []core.ModuleFault
	for _, f := range faultSlots {
		if f != nil {
			w.logger.Warn("module fault module=%s err=%v", f.Module, f.Err)
			faults = append(faults, *f)
		}
	}
	return batches, faults
}

func cloneSnapshot(snap core.Snapshot) core.Snapshot {
	clone := snap
	clone.Content = snap.Content.Clone()
	if snap.Drives != nil {
		d := *snap.Drives
		clone.Drives = &d
	}
	clone.Goals = make([]core.Goal, len(snap.Goals))
	copy(clone.Goals, snap.Goals)
	clone.Recent = make([]core.HistoryRecord, len(snap.Recent))
	copy(clone.Recent, snap.Recent)
	return clone
}

// gateAndValidate flattens batches in registration order, rejecting malformed
// proposals and scoring the rest through the attention gate.
func (w *Workspace) gateAndValidate(batches [][]core.Proposal, frame Frame) ([]candidate, []core.RejectedProposal) {
	params := gate.Params{Weights: w.cfg.Weights, FocusBias: w.cfg.FocusBias}

	var candidates []candidate
	var rejections []core.RejectedProposal
	for i, batch := range batches {
		for _, p := range batch {
			if p.Source == "" {
				p.Source = w.modules[i].Name()
			}
			if err := p.Validate(); err != nil {
				w.logger.Warn("proposal rejected module=%s reason=%v", p.Source, err)
				rejections = append(rejections, core.RejectedProposal{Proposal: p, Reason: err.Error()})
				continue
			}
			candidates = append(candidates, candidate{
				proposal: p,
				score:    gate.Score(p, frame.Drives, frame.Focus, params),
			})
		}
	}
	return candidates, rejections
}

// compete selects the candidate with the maximum gated score. Candidates are
// in registration-then-batch order, so keeping the first strict maximum
// implements the deterministic tie-break.
func compete(candidates []candidate) (core.Proposal, float64, bool) {
	if len(candidates) == 0 {
		return core.Proposal{}, 0, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.proposal, best.score, true
}

// appendHistoryLocked records the cycle's surviving content.
func (w *Workspace) appendHistoryLocked(cycle int, winnerScore float64) error {
	concept, _ := core.ProposalConcept(w.current.Proposal)
	rec := core.HistoryRecord{
		Cycle:      cycle,
		ContentID:  w.current.ID,
		Kind:       w.current.Proposal.Kind,
		Source:     w.current.Proposal.Source,
		Concept:    concept,
		Ignited:    w.ignited,
		Activation: w.current.Activation,
		When:       time.Now(),
	}
	if w.ignited {
		rec.Score = winnerScore
	}
	return w.hist.Append(rec)
}

// broadcast delivers the committed content (nil when idle) to every module
// exactly once. The sequential loop is the synchronization barrier: RunCycle
// does not return until every module's update has been applied, so no module
// races ahead into the next cycle on stale state. A panicking module is
// recorded as a fault and delivery continues with the remaining modules.
func (w *Workspace) broadcast(cycle int) []core.ModuleFault {
	start := time.Now()
	var faults []core.ModuleFault
	for _, m := range w.modules {
		if err := w.deliver(m, cycle); err != nil {
			w.logger.Warn("module fault module=%s err=%v", m.Name(), err)
			faults = append(faults, core.ModuleFault{Module: m.Name(), Err: err})
		}
	}
	w.logger.Debug("broadcast cycle=%d modules=%d has_content=%t dur=%s",
		cycle, len(w.modules), w.current != nil, time.Since(start))
	return faults
}

func (w *Workspace) deliver(m core.Module, cycle int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("broadcast panicked: %v", r)
		}
	}()
	m.OnBroadcast(w.current.Clone(), cycle)
	return nil
}

// Current returns a copy of the active content, nil when idle.
func (w *Workspace) Current() *core.WorkspaceContent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Clone()
}

// Phase reports the coarse cycle state machine position.
func (w *Workspace) Phase() core.Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.current == nil:
		return core.PhaseIdle
	case w.ignited:
		return core.PhaseIgnited
	default:
		return core.PhasePersisting
	}
}

// Cycle returns the index the next RunCycle call will execute.
func (w *Workspace) Cycle() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cycle
}

// History exposes the underlying history store for read access.
func (w *Workspace) History() core.HistoryStore {
	return w.hist
}
