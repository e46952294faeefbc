package drive

import (
	"sync"

	"github.com/cognisys/mindspace/core"
)

type painState struct {
	Physical    float64 `yaml:"physical"`
	Existential float64 `yaml:"existential"`
	Frustration float64 `yaml:"frustration"`
}

type curiosityState struct {
	Epistemic float64 `yaml:"epistemic"`
	Diversive float64 `yaml:"diversive"`
	Specific  float64 `yaml:"specific"`
}

type boredomState struct {
	Understimulation float64 `yaml:"understimulation"`
	Satiation        float64 `yaml:"satiation"`
}

// State is the full facet-level drive state. All facets live in [0, 1].
type State struct {
	Pain       painState      `yaml:"pain"`
	Curiosity  curiosityState `yaml:"curiosity"`
	Boredom    boredomState   `yaml:"boredom"`
	Confidence float64        `yaml:"confidence"`
	Confusion  float64        `yaml:"confusion"`
}

// DefaultState is the motivational starting point: curious, moderately
// confident, no pain.
func DefaultState() State {
	return State{
		Curiosity:  curiosityState{Epistemic: 0.8, Diversive: 0.2, Specific: 0.5},
		Confidence: 0.5,
	}
}

// System holds the evolving drive state and derives the flat vector the
// workspace gate consumes. Safe for concurrent use.
type System struct {
	mu    sync.Mutex
	state State
}

// NewSystem creates a drive system starting from the default state.
func NewSystem() *System {
	return &System{state: DefaultState()}
}

// NewSystemFromState creates a drive system starting from the given state,
// with every facet clamped into [0, 1].
func NewSystemFromState(state State) *System {
	s := &System{state: state}
	s.clampLocked()
	return s
}

// State returns a copy of the current facet-level state.
func (s *System) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Vector aggregates the facets into the flat drive vector: each dimension is
// the mean of its facets, already in [0, 1].
func (s *System) Vector() core.DriveVector {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	return core.DriveVector{
		Pain:       (st.Pain.Physical + st.Pain.Existential + st.Pain.Frustration) / 3,
		Curiosity:  (st.Curiosity.Epistemic + st.Curiosity.Diversive + st.Curiosity.Specific) / 3,
		Boredom:    (st.Boredom.Understimulation + st.Boredom.Satiation) / 2,
		Confidence: st.Confidence,
		Confusion:  st.Confusion,
	}
}

// RecordSuccess updates the state after a goal completes: frustration and
// confusion ease, confidence grows with the difficulty, repetition builds
// satiation.
func (s *System) RecordSuccess(difficulty float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pain.Frustration -= 0.2
	s.state.Confidence += 0.05 * difficulty
	s.state.Confusion -= 0.1
	s.state.Boredom.Satiation += 0.1
	s.clampLocked()
}

// RecordFailure updates the state after a goal fails. Repeated failure on
// the same task builds frustration; a fresh failure hits existential pain
// instead. Confidence never drops below a small floor.
func (s *System) RecordFailure(repeated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if repeated {
		s.state.Pain.Frustration += 0.25
	} else {
		s.state.Pain.Existential += 0.15
	}
	s.state.Confidence -= 0.1
	s.state.Confusion += 0.15
	s.clampLocked()
	if s.state.Confidence < 0.1 {
		s.state.Confidence = 0.1
	}
}

// RecordExploration updates the state after exploring: understimulation
// falls, diversive curiosity grows, satiation creeps up.
func (s *System) RecordExploration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Boredom.Understimulation -= 0.15
	s.state.Curiosity.Diversive += 0.05
	s.state.Boredom.Satiation += 0.03
	s.clampLocked()
}

// OnPercept reacts to external input reaching the workspace: novelty
// relieves understimulation and stirs diversive curiosity.
func (s *System) OnPercept() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Boredom.Understimulation -= 0.1
	s.state.Curiosity.Diversive += 0.03
	s.clampLocked()
}

// OnReflect reacts to a reflection pass: confusion and existential pain
// ease.
func (s *System) OnReflect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Confusion -= 0.2
	s.state.Pain.Existential -= 0.1
	s.clampLocked()
}

// Decay applies the natural fading of intense states over the given number
// of cycles: pain fades slowly, boredom with activity, confusion on its own.
// Understimulation instead grows slightly each idle cycle.
func (s *System) Decay(cycles int) {
	if cycles <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rate := 0.02 * float64(cycles)

	s.state.Pain.Physical -= rate * 0.1
	s.state.Pain.Existential -= rate * 0.1
	s.state.Pain.Frustration -= rate * 0.1
	s.state.Boredom.Satiation -= rate * 0.05
	s.state.Confusion -= rate * 0.3
	s.state.Boredom.Understimulation += rate * 0.5
	s.clampLocked()
}

func (s *System) clampLocked() {
	clamp := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
		if *v > 1 {
			*v = 1
		}
	}
	clamp(&s.state.Pain.Physical)
	clamp(&s.state.Pain.Existential)
	clamp(&s.state.Pain.Frustration)
	clamp(&s.state.Curiosity.Epistemic)
	clamp(&s.state.Curiosity.Diversive)
	clamp(&s.state.Curiosity.Specific)
	clamp(&s.state.Boredom.Understimulation)
	clamp(&s.state.Boredom.Satiation)
	clamp(&s.state.Confidence)
	clamp(&s.state.Confusion)
}
