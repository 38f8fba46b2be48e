package metrics

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Window accumulates per-step cost and timing between snapshots.
type Window struct {
	costs   []float64
	compute time.Duration
}

// Record adds a new measurement to the window.
func (w *Window) Record(cost float64, computeTime time.Duration) {
	w.costs = append(w.costs, cost)
	w.compute += computeTime
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Steps: len(w.costs)}
	if w.compute > 0 {
		snap.StepsPerSec = float64(snap.Steps) / w.compute.Seconds()
	}
	if snap.Steps > 0 {
		snap.AvgCost = floats.Sum(w.costs) / float64(snap.Steps)
		snap.LastCost = w.costs[snap.Steps-1]
	}

	w.costs = w.costs[:0]
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps       int
	StepsPerSec float64
	AvgCost     float64
	LastCost    float64
}
