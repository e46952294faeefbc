// Package core provides the foundational domain types and interfaces used by
// mindspace. It defines the core abstractions for:
//
//   - Proposals (candidate actions with supporting evidence)
//   - Modules (units of parallel proposal generation & broadcast consumption)
//   - WorkspaceContent (the currently active, decaying conscious item)
//   - Snapshots (immutable per-cycle views handed to modules)
//   - Pluggable stores for cycle history
//
// The package intentionally keeps implementation concerns (the arbitration
// loop, concrete modules, drive bookkeeping) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
