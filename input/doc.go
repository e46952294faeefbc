// Package input provides the external event sources the perception module
// polls. The simulated source emits sporadic concept events from a seed
// pool, with an explicit push queue for deterministic injection in tests and
// demos.
package input
