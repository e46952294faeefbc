package input

import (
	"math/rand"
	"sync"

	"github.com/cognisys/mindspace/core"
)

// defaultSeedConcepts is the fallback pool when neither the caller nor the
// poll supplies concepts.
var defaultSeedConcepts = []string{
	"knowledge",
	"curiosity",
	"memory",
	"emotion",
	"goal",
	"creativity",
	"analysis",
}

// SimulatedSourceOptions configures a simulated source.
type SimulatedSourceOptions struct {
	// EventRate is the per-poll probability of a spontaneous event, in
	// [0, 1].
	EventRate float64

	// SeedConcepts is the pool spontaneous events draw from when the poll
	// offers no known concepts.
	SeedConcepts []string

	// Rand drives the event timing and selection. Defaults to a source
	// seeded from the global generator; supply a seeded one for
	// reproducible runs.
	Rand *rand.Rand
}

// SimulatedSource emits sporadic concept events, standing in for a real
// sensor feed. Pushed events always drain before spontaneous ones. Safe for
// concurrent use.
type SimulatedSource struct {
	mu        sync.Mutex
	eventRate float64
	seeds     []string
	rng       *rand.Rand
	queue     []core.InputEvent
}

// NewSimulatedSource creates a simulated source.
func NewSimulatedSource(optFns ...func(o *SimulatedSourceOptions)) *SimulatedSource {
	opts := SimulatedSourceOptions{
		EventRate:    0.25,
		SeedConcepts: defaultSeedConcepts,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	if len(opts.SeedConcepts) == 0 {
		opts.SeedConcepts = defaultSeedConcepts
	}

	seeds := make([]string, len(opts.SeedConcepts))
	copy(seeds, opts.SeedConcepts)

	return &SimulatedSource{
		eventRate: opts.EventRate,
		seeds:     seeds,
		rng:       opts.Rand,
	}
}

// WithEventRate sets the per-poll probability of a spontaneous event.
func WithEventRate(rate float64) func(o *SimulatedSourceOptions) {
	return func(o *SimulatedSourceOptions) {
		o.EventRate = rate
	}
}

// WithSeedConcepts sets the spontaneous concept pool.
func WithSeedConcepts(concepts ...string) func(o *SimulatedSourceOptions) {
	return func(o *SimulatedSourceOptions) {
		o.SeedConcepts = concepts
	}
}

// WithRand sets the random source, typically seeded for reproducible runs.
func WithRand(rng *rand.Rand) func(o *SimulatedSourceOptions) {
	return func(o *SimulatedSourceOptions) {
		o.Rand = rng
	}
}

// Push queues an event to be returned ahead of any spontaneous ones.
func (s *SimulatedSource) Push(event core.InputEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, event)
}

// Poll implements core.InputSource. Queued events drain first; otherwise an
// event fires with probability EventRate, drawing a concept from the
// available pool (falling back to the seed pool) with salience in [0.4, 1).
func (s *SimulatedSource) Poll(available []string) (core.InputEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) > 0 {
		event := s.queue[0]
		s.queue = s.queue[1:]
		return event, true
	}

	if s.rng.Float64() > s.eventRate {
		return core.InputEvent{}, false
	}

	pool := available
	if len(pool) == 0 {
		pool = s.seeds
	}

	return core.InputEvent{
		Concept:  pool[s.rng.Intn(len(pool))],
		Salience: 0.4 + 0.6*s.rng.Float64(),
	}, true
}
