// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer MindspaceLogger with contextual
// helpers (component, cycle) and domain specific logging helpers for
// competition, ignition, decay and broadcast.
package logging
