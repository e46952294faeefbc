// Package history provides the default in-memory implementation of
// core.HistoryStore: a bounded, append-only record of past workspace
// contents used for analytics and module heuristics.
package history
