package workspace

import "github.com/cognisys/mindspace/core"

// Stats summarizes the arbitration history: how often ignition occurs, how
// long ignited content persists, and which action kinds win. Raw numbers
// only; formatting and reporting are the host's concern.
type Stats struct {
	// Cycles completed so far.
	Cycles int

	// Ignitions counts cycles that ignited new content.
	Ignitions int

	// IgnitionRate is Ignitions / Cycles (0 when no cycles ran).
	IgnitionRate float64

	// MeanRunLength is the mean number of cycles a single ignition's content
	// stayed active (ignition cycle included).
	MeanRunLength float64

	// MaxRunLength is the longest such run.
	MaxRunLength int

	// WinsByKind counts ignitions per action kind.
	WinsByKind map[core.ActionKind]int
}

// Stats computes summary statistics from the retained history. With a bounded
// history store the figures cover the retained window only.
func (w *Workspace) Stats() Stats {
	w.mu.Lock()
	cycles := w.cycle
	w.mu.Unlock()

	stats := Stats{Cycles: cycles, WinsByKind: make(map[core.ActionKind]int)}

	var runLengths []int
	currentID := ""
	runLen := 0
	for _, rec := range w.hist.Records() {
		if rec.Ignited {
			stats.Ignitions++
			stats.WinsByKind[rec.Kind]++
		}
		if rec.ContentID != currentID {
			if runLen > 0 {
				runLengths = append(runLengths, runLen)
			}
			currentID = rec.ContentID
			runLen = 0
		}
		runLen++
	}
	if runLen > 0 {
		runLengths = append(runLengths, runLen)
	}

	if cycles > 0 {
		stats.IgnitionRate = float64(stats.Ignitions) / float64(cycles)
	}
	total := 0
	for _, l := range runLengths {
		total += l
		if l > stats.MaxRunLength {
			stats.MaxRunLength = l
		}
	}
	if len(runLengths) > 0 {
		stats.MeanRunLength = float64(total) / float64(len(runLengths))
	}
	return stats
}
