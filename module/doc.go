// Package module provides the built-in specialist implementations of
// core.Module: goal execution, exploration, reflection, pattern/analogy
// detection, perception, and the passive broadcast consumers (emotion and
// working-memory updaters). Heuristic collaborators such as planners, concept
// stores and analogy finders are injected as small interfaces; the modules
// own only proposal construction and broadcast bookkeeping.
package module
