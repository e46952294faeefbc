package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cognisys/mindspace/core"
	"github.com/cognisys/mindspace/gate"
	"github.com/cognisys/mindspace/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testConfig uses neutral weights and no focus bias so a proposal's gated
// score equals its raw evidence, making scenario arithmetic obvious.
func testConfig() Config {
	cfg := DefaultConfig
	cfg.Weights = gate.NeutralWeights()
	cfg.FocusBias = 1.0
	cfg.IgnitionThreshold = 5.0
	cfg.DecayStep = 0.3
	cfg.ProposeTimeout = 0
	return cfg
}

func newTestWorkspace(t *testing.T, cfg Config, modules ...core.Module) *Workspace {
	t.Helper()
	w, err := New(func(o *Options) { o.Config = cfg })
	require.NoError(t, err)
	for _, m := range modules {
		w.Register(m)
	}
	return w
}

func evidenceProposal(kind core.ActionKind, evidence float64) core.Proposal {
	return core.Proposal{Kind: kind, Evidence: evidence}
}

func TestRunCycleIgnitesStrongestProposal(t *testing.T) {
	// Threshold 5.0, gated scores 6.0 and 4.0: the 6.0 proposal wins and
	// ignites with activation 1.0.
	strong := testutil.NewStaticModule("strong", evidenceProposal(core.ActionExecuteGoal, 6.0))
	weak := testutil.NewStaticModule("weak", evidenceProposal(core.ActionExplore, 4.0))
	w := newTestWorkspace(t, testConfig(), strong, weak)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	assert.True(t, result.Ignited)
	assert.Equal(t, 6.0, result.WinnerScore)
	require.NotNil(t, result.Content)
	assert.Equal(t, core.ActionExecuteGoal, result.Content.Proposal.Kind)
	assert.Equal(t, "strong", result.Content.Proposal.Source)
	assert.Equal(t, 1.0, result.Content.Activation)
	assert.Equal(t, 0, result.Content.CyclesAlive)
	assert.Equal(t, core.PhaseIgnited, w.Phase())
}

func TestRunCycleBelowThresholdNoContent(t *testing.T) {
	// Single proposal at 3.0 against threshold 5.0 with nothing persisted:
	// explicit "no conscious content" outcome.
	m := testutil.NewStaticModule("weak", evidenceProposal(core.ActionReflect, 3.0))
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	assert.False(t, result.Ignited)
	assert.Equal(t, 3.0, result.WinnerScore)
	assert.Nil(t, result.Content)
	assert.Equal(t, core.PhaseIdle, w.Phase())
}

func TestRunCycleNoProposalsNoContent(t *testing.T) {
	m := testutil.NewScriptedModule("silent")
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	assert.False(t, result.Ignited)
	assert.Zero(t, result.WinnerScore)
	assert.Nil(t, result.Content)
}

func TestRunCycleDecayAndClear(t *testing.T) {
	// Ignite once, then decay by a fixed 0.3 step per cycle: 1.0 -> 0.7 ->
	// 0.4 -> 0.1 -> cleared. CyclesAlive increments with every survival.
	m := testutil.NewScriptedModule("goal", []core.Proposal{evidenceProposal(core.ActionExecuteGoal, 6.0)})
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	contentID := result.Content.ID

	want := []struct {
		activation float64
		alive      int
	}{
		{0.7, 1},
		{0.4, 2},
		{0.1, 3},
	}
	for _, step := range want {
		result, err = w.RunCycle(context.Background(), Frame{})
		require.NoError(t, err)
		assert.False(t, result.Ignited)
		require.NotNil(t, result.Content)
		assert.Equal(t, contentID, result.Content.ID)
		assert.InDelta(t, step.activation, result.Content.Activation, 1e-9)
		assert.Equal(t, step.alive, result.Content.CyclesAlive)
		assert.Equal(t, core.PhasePersisting, w.Phase())
	}

	// 0.1 - 0.3 falls through the floor: content cleared, state Idle.
	result, err = w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Nil(t, result.Content)
	assert.Equal(t, core.PhaseIdle, w.Phase())
}

func TestRunCycleIgnitionPreemptsPersistingContent(t *testing.T) {
	first := []core.Proposal{evidenceProposal(core.ActionExecuteGoal, 6.0)}
	third := []core.Proposal{evidenceProposal(core.ActionExplore, 7.0)}
	m := testutil.NewScriptedModule("m", first, nil, third)
	w := newTestWorkspace(t, testConfig(), m)

	r0, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.True(t, r0.Ignited)

	r1, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.NotNil(t, r1.Content)
	assert.Equal(t, r0.Content.ID, r1.Content.ID)

	// New winner pre-empts even though the old content had not decayed out.
	r2, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.True(t, r2.Ignited)
	assert.NotEqual(t, r0.Content.ID, r2.Content.ID)
	assert.Equal(t, core.ActionExplore, r2.Content.Proposal.Kind)
	assert.Equal(t, 1.0, r2.Content.Activation)
	assert.Equal(t, 0, r2.Content.CyclesAlive)
}

func TestRunCycleTieBreakByRegistrationOrder(t *testing.T) {
	// Two proposals tie at 5.0; the module registered first wins.
	a := testutil.NewStaticModule("a", evidenceProposal(core.ActionExplore, 5.0))
	b := testutil.NewStaticModule("b", evidenceProposal(core.ActionReflect, 5.0))
	w := newTestWorkspace(t, testConfig(), a, b)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	assert.Equal(t, "a", result.Content.Proposal.Source)
}

func TestRunCycleTieBreakByBatchOrder(t *testing.T) {
	// Ties within one module's batch resolve by insertion order.
	m := testutil.NewStaticModule("m",
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "first"}, Evidence: 5.0},
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "second"}, Evidence: 5.0},
	)
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	concept, _ := core.ProposalConcept(result.Content.Proposal)
	assert.Equal(t, "first", concept)
}

func TestRunCycleWinnerHasMaximalScore(t *testing.T) {
	m := testutil.NewStaticModule("m",
		evidenceProposal(core.ActionExplore, 1.0),
		evidenceProposal(core.ActionReflect, 4.5),
		evidenceProposal(core.ActionPerceive, 2.2),
		evidenceProposal(core.ActionExecuteGoal, 0.1),
	)
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Equal(t, 4.5, result.WinnerScore)
	assert.False(t, result.Ignited) // below the 5.0 threshold
}

func TestRunCycleBroadcastDeliveredToEveryModuleOncePerCycle(t *testing.T) {
	proposing := testutil.NewStaticModule("proposing", evidenceProposal(core.ActionExecuteGoal, 6.0))
	silent := testutil.NewScriptedModule("silent")
	w := newTestWorkspace(t, testConfig(), proposing, silent)

	for i := 0; i < 3; i++ {
		_, err := w.RunCycle(context.Background(), Frame{})
		require.NoError(t, err)
	}

	for _, broadcasts := range [][]testutil.Broadcast{proposing.Broadcasts(), silent.Broadcasts()} {
		require.Len(t, broadcasts, 3)
		for i, b := range broadcasts {
			assert.Equal(t, i, b.Cycle)
			// Broadcast reflects the committed state: re-ignited every cycle.
			require.NotNil(t, b.Content)
			assert.Equal(t, 1.0, b.Content.Activation)
		}
	}
}

func TestRunCycleBroadcastsNilWhenIdle(t *testing.T) {
	silent := testutil.NewScriptedModule("silent")
	w := newTestWorkspace(t, testConfig(), silent)

	_, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	broadcasts := silent.Broadcasts()
	require.Len(t, broadcasts, 1)
	assert.Nil(t, broadcasts[0].Content)
}

func TestRunCycleModuleErrorIsFaultNotFatal(t *testing.T) {
	sentinel := errors.New("boom")
	faulty := testutil.NewScriptedModule("faulty").FailWith(sentinel)
	healthy := testutil.NewStaticModule("healthy", evidenceProposal(core.ActionExplore, 6.0))
	w := newTestWorkspace(t, testConfig(), faulty, healthy)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	require.Len(t, result.Faults, 1)
	assert.Equal(t, "faulty", result.Faults[0].Module)
	assert.ErrorIs(t, result.Faults[0].Err, sentinel)
	assert.True(t, result.Ignited)

	// The faulty module still receives the broadcast.
	assert.Len(t, faulty.Broadcasts(), 1)
}

func TestRunCycleModulePanicIsFaultNotFatal(t *testing.T) {
	panicky := testutil.NewScriptedModule("panicky").PanicWith("kaboom")
	healthy := testutil.NewStaticModule("healthy", evidenceProposal(core.ActionExplore, 6.0))
	w := newTestWorkspace(t, testConfig(), panicky, healthy)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	require.Len(t, result.Faults, 1)
	assert.Equal(t, "panicky", result.Faults[0].Module)
	assert.Contains(t, result.Faults[0].Err.Error(), "kaboom")
	assert.True(t, result.Ignited)
}

// broadcastPanicModule proposes nothing and panics on every broadcast.
type broadcastPanicModule struct{}

func (broadcastPanicModule) Name() string { return "unstable" }

func (broadcastPanicModule) Propose(context.Context, core.Snapshot) ([]core.Proposal, error) {
	return nil, nil
}

func (broadcastPanicModule) OnBroadcast(*core.WorkspaceContent, int) { panic("kaboom") }

func TestRunCycleBroadcastPanicIsFaultNotFatal(t *testing.T) {
	healthy := testutil.NewStaticModule("healthy", evidenceProposal(core.ActionExplore, 6.0))
	w := newTestWorkspace(t, testConfig(), broadcastPanicModule{}, healthy)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	// The cycle commits and the remaining modules still hear the broadcast.
	assert.True(t, result.Ignited)
	require.Len(t, result.Faults, 1)
	assert.Equal(t, "unstable", result.Faults[0].Module)
	assert.Contains(t, result.Faults[0].Err.Error(), "kaboom")
	require.Len(t, healthy.Broadcasts(), 1)
	require.NotNil(t, healthy.Broadcasts()[0].Content)
}

func TestRunCycleRejectsMalformedProposals(t *testing.T) {
	m := testutil.NewStaticModule("m",
		core.Proposal{Kind: core.ActionExplore, Evidence: -1},
		core.Proposal{Kind: core.ActionUnknown, Evidence: 9.0},
		evidenceProposal(core.ActionReflect, 6.0),
	)
	w := newTestWorkspace(t, testConfig(), m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	require.Len(t, result.Rejections, 2)
	assert.Contains(t, result.Rejections[0].Reason, "negative")
	assert.Contains(t, result.Rejections[1].Reason, "unknown action kind")

	// The malformed 9.0 proposal is excluded; the valid 6.0 one wins.
	require.True(t, result.Ignited)
	assert.Equal(t, core.ActionReflect, result.Content.Proposal.Kind)
}

func TestRunCycleCapsModuleBatch(t *testing.T) {
	cfg := testConfig()
	cfg.MaxProposalsPerModule = 2
	// The strongest proposal sits past the cap and must not compete.
	m := testutil.NewStaticModule("m",
		evidenceProposal(core.ActionExplore, 1.0),
		evidenceProposal(core.ActionReflect, 2.0),
		evidenceProposal(core.ActionExecuteGoal, 9.0),
	)
	w := newTestWorkspace(t, cfg, m)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.WinnerScore)
	assert.False(t, result.Ignited)
}

// blockingModule waits for context cancellation and reports the cause.
type blockingModule struct{}

func (blockingModule) Name() string { return "blocking" }

func (blockingModule) Propose(ctx context.Context, _ core.Snapshot) ([]core.Proposal, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingModule) OnBroadcast(*core.WorkspaceContent, int) {}

func TestRunCycleProposeTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.ProposeTimeout = 10 * time.Millisecond
	healthy := testutil.NewStaticModule("healthy", evidenceProposal(core.ActionExplore, 6.0))
	w := newTestWorkspace(t, cfg, blockingModule{}, healthy)

	result, err := w.RunCycle(context.Background(), Frame{})
	require.NoError(t, err)

	require.Len(t, result.Faults, 1)
	assert.Equal(t, "blocking", result.Faults[0].Module)
	assert.ErrorIs(t, result.Faults[0].Err, context.DeadlineExceeded)
	assert.True(t, result.Ignited)
}

func TestRunCycleFocusBias(t *testing.T) {
	cfg := testConfig()
	cfg.FocusBias = 1.3
	cfg.IgnitionThreshold = 0.5
	m := testutil.NewStaticModule("m",
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "entropy"}, Evidence: 1.0},
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "gravity"}, Evidence: 1.2},
	)
	w := newTestWorkspace(t, cfg, m)

	// Sustained focus on "entropy" lifts 1.0 to 1.3, beating 1.2.
	result, err := w.RunCycle(context.Background(), Frame{Drives: &core.DriveVector{}, Focus: "entropy"})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	concept, _ := core.ProposalConcept(result.Content.Proposal)
	assert.Equal(t, "entropy", concept)
	assert.InDelta(t, 1.3, result.WinnerScore, 1e-9)
}

func TestRunCycleNoFocusBiasWithoutDrives(t *testing.T) {
	cfg := testConfig()
	cfg.FocusBias = 1.3
	cfg.IgnitionThreshold = 0.5
	m := testutil.NewStaticModule("m",
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "entropy"}, Evidence: 1.0},
		core.Proposal{Kind: core.ActionExplore, Payload: core.ConceptPayload{Name: "gravity"}, Evidence: 1.2},
	)
	w := newTestWorkspace(t, cfg, m)

	// A frame without a drive vector is fully neutral: no gains and no
	// focus bias, so the raw 1.2 wins despite the focus match on "entropy".
	result, err := w.RunCycle(context.Background(), Frame{Focus: "entropy"})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	concept, _ := core.ProposalConcept(result.Content.Proposal)
	assert.Equal(t, "gravity", concept)
	assert.InDelta(t, 1.2, result.WinnerScore, 1e-9)
}

func TestRunCycleDriveGatedCompetition(t *testing.T) {
	cfg := testConfig()
	cfg.IgnitionThreshold = 1.5
	m := testutil.NewStaticModule("m",
		core.Proposal{Kind: core.ActionExplore, Salience: 1.0},
		core.Proposal{Kind: core.ActionReflect, Urgency: 1.0},
	)
	w := newTestWorkspace(t, cfg, m)

	// High pain and confusion amplify urgency: the reflect proposal wins.
	drives := &core.DriveVector{Pain: 1, Confusion: 1}
	result, err := w.RunCycle(context.Background(), Frame{Drives: drives})
	require.NoError(t, err)
	require.True(t, result.Ignited)
	assert.Equal(t, core.ActionReflect, result.Content.Proposal.Kind)
	assert.InDelta(t, 2.0, result.WinnerScore, 1e-9)
}

func TestRunCycleDeterministicAcrossRuns(t *testing.T) {
	script := func() [][]core.Proposal {
		return [][]core.Proposal{
			{evidenceProposal(core.ActionExecuteGoal, 6.0)},
			{evidenceProposal(core.ActionExplore, 4.0)},
			nil,
			{evidenceProposal(core.ActionReflect, 5.5)},
			nil,
			nil,
		}
	}

	run := func() (kinds []core.ActionKind, activations []float64) {
		w := newTestWorkspace(t, testConfig(), testutil.NewScriptedModule("m", script()...))
		for i := 0; i < 6; i++ {
			result, err := w.RunCycle(context.Background(), Frame{})
			require.NoError(t, err)
			if result.Content != nil {
				kinds = append(kinds, result.Content.Proposal.Kind)
				activations = append(activations, result.Content.Activation)
			} else {
				kinds = append(kinds, core.ActionUnknown)
				activations = append(activations, 0)
			}
		}
		return kinds, activations
	}

	kinds1, activations1 := run()
	kinds2, activations2 := run()
	assert.Equal(t, kinds1, kinds2)
	assert.Equal(t, activations1, activations2)
}

func TestRunCycleRecordsHistory(t *testing.T) {
	m := testutil.NewScriptedModule("m",
		[]core.Proposal{evidenceProposal(core.ActionExecuteGoal, 6.0)},
		nil,
		nil,
	)
	w := newTestWorkspace(t, testConfig(), m)

	for i := 0; i < 3; i++ {
		_, err := w.RunCycle(context.Background(), Frame{})
		require.NoError(t, err)
	}

	records := w.History().Records()
	require.Len(t, records, 3)
	assert.True(t, records[0].Ignited)
	assert.Equal(t, 6.0, records[0].Score)
	assert.False(t, records[1].Ignited)
	assert.False(t, records[2].Ignited)
	// One persistence run shares the content ID.
	assert.Equal(t, records[0].ContentID, records[1].ContentID)
	assert.Equal(t, records[0].ContentID, records[2].ContentID)
	assert.InDelta(t, 0.4, records[2].Activation, 1e-9)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig
	cfg.IgnitionThreshold = 0
	_, err := New(func(o *Options) { o.Config = cfg })
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
