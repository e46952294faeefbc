package module

import "github.com/cognisys/mindspace/core"

// BaseModule bundles the shared identity helper. Embed it in concrete module
// implementations and supply Propose/OnBroadcast to satisfy core.Module.
type BaseModule struct {
	name string
}

// NewBaseModule constructs a BaseModule with the given name.
func NewBaseModule(name string) BaseModule {
	return BaseModule{name: name}
}

// Name returns the module's stable identifier.
func (b *BaseModule) Name() string { return b.name }

// OnBroadcast is a no-op default; modules that track broadcast state
// override it.
func (b *BaseModule) OnBroadcast(*core.WorkspaceContent, int) {}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// neutralDrives is the fallback for cycles where the host supplied no drive
// vector.
var neutralDrives = core.DriveVector{Curiosity: 0.5, Confidence: 0.5}

func drivesOrNeutral(d *core.DriveVector) core.DriveVector {
	if d == nil {
		return neutralDrives
	}
	return *d
}

// explorationDrive mirrors how the drive dimensions interact for novelty
// seeking: curiosity dominates, boredom pushes, confusion dampens.
func explorationDrive(d core.DriveVector) float64 {
	return clamp01(0.5*d.Curiosity + 0.3*d.Boredom + 0.2*(1-d.Confusion))
}

// focusDrive expresses the pull toward sustained goal work: curiosity minus a
// pain discount.
func focusDrive(d core.DriveVector) float64 {
	return clamp01(d.Curiosity - 0.3*d.Pain)
}
