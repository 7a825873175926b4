// Package metrics provides per-step observers that reduce a run to summary
// values: conservation drift and merge activity.
package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vec"
)

// EnergyDrift tracks the worst relative deviation of total mechanical
// energy from its first observed value.
type EnergyDrift struct {
	evaluator *gravity.Evaluator
	initial   float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(ev *gravity.Evaluator) *EnergyDrift {
	return &EnergyDrift{evaluator: ev}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(reg body.Registry, t float64) {
	energy := e.evaluator.Energy(reg)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the worst absolute deviation of total momentum from
// its first observed value. For a closed system this should stay at
// floating-point noise regardless of merges.
type MomentumDrift struct {
	initial  vec.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(reg body.Registry, t float64) {
	p := reg.Momentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Length())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vec.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}

// MergeCount reports how many bodies have been lost to merges since the
// first observation.
type MergeCount struct {
	initial int
	current int
	samples int
}

func NewMergeCount() *MergeCount {
	return &MergeCount{}
}

func (c *MergeCount) Name() string { return "merges" }

func (c *MergeCount) Observe(reg body.Registry, t float64) {
	if c.samples == 0 {
		c.initial = len(reg)
	}
	c.samples++
	c.current = len(reg)
}

func (c *MergeCount) Value() float64 {
	return float64(c.initial - c.current)
}

func (c *MergeCount) Reset() {
	c.initial = 0
	c.current = 0
	c.samples = 0
}
