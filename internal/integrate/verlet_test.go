package integrate

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vec"
)

// circularPair builds a heavy central body with a light satellite on a
// circular orbit of radius r, and returns the orbital period.
func circularPair(g, centralMass, r float64) (body.Registry, float64) {
	v := math.Sqrt(g * centralMass / r)
	period := 2 * math.Pi * r / v

	reg := body.Registry{
		{Name: "star", Mass: centralMass},
		{Name: "sat", Mass: 1e-9, Position: vec.Vec3{X: r}, Velocity: vec.Vec3{Y: v}},
	}
	return reg, period
}

func TestVerlet_CircularOrbitReturns(t *testing.T) {
	ev := gravity.New(1.0, 0.0)
	reg, period := circularPair(1.0, 1000.0, 1.0)

	steps := 20000
	dt := period / float64(steps)

	ev.Accelerations(reg)
	verlet := NewVerlet()
	for i := 0; i < steps; i++ {
		verlet.Step(ev, reg, dt)
	}

	sat := reg[1]
	drift := sat.Position.Sub(vec.Vec3{X: 1.0}).Length()
	if drift > 1e-3 {
		t.Errorf("after one period satellite drifted %v from start, want < 1e-3", drift)
	}
}

func TestVerlet_EnergyBounded(t *testing.T) {
	ev := gravity.New(1.0, 0.0)
	reg, period := circularPair(1.0, 1000.0, 1.0)

	steps := 50000
	dt := 5 * period / float64(steps)

	ev.Accelerations(reg)
	e0 := ev.Energy(reg)

	verlet := NewVerlet()
	maxDrift := 0.0
	for i := 0; i < steps; i++ {
		verlet.Step(ev, reg, dt)
		drift := math.Abs(ev.Energy(reg)-e0) / math.Abs(e0)
		maxDrift = math.Max(maxDrift, drift)
	}

	if maxDrift > 1e-4 {
		t.Errorf("relative energy drift %v over five periods, want < 1e-4", maxDrift)
	}
}

func TestVerlet_MomentumConserved(t *testing.T) {
	ev := gravity.New(1.0, 0.01)
	reg := body.Registry{
		{Name: "a", Mass: 2, Position: vec.Vec3{X: -1, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0, Y: 0.3, Z: 0}},
		{Name: "b", Mass: 3, Position: vec.Vec3{X: 1, Y: 0.5, Z: 0}, Velocity: vec.Vec3{X: 0, Y: -0.2, Z: 0.1}},
		{Name: "c", Mass: 1, Position: vec.Vec3{X: 0, Y: -2, Z: 1}, Velocity: vec.Vec3{X: 0.5, Y: 0, Z: 0}},
	}

	ev.Accelerations(reg)
	p0 := reg.Momentum()

	verlet := NewVerlet()
	for i := 0; i < 5000; i++ {
		verlet.Step(ev, reg, 0.001)
	}

	if diff := reg.Momentum().Sub(p0).Length(); diff > 1e-9 {
		t.Errorf("momentum changed by %v over 5000 steps", diff)
	}
}

func TestVerlet_ScratchReuseAcrossShrink(t *testing.T) {
	// A registry that shrinks between steps (merges) must not confuse the
	// integrator's old-acceleration buffer.
	ev := gravity.New(1.0, 0.01)
	reg := body.Registry{
		{Name: "a", Mass: 1, Position: vec.Vec3{X: -1, Y: 0, Z: 0}},
		{Name: "b", Mass: 1, Position: vec.Vec3{X: 1, Y: 0, Z: 0}},
		{Name: "c", Mass: 1, Position: vec.Vec3{X: 0, Y: 2, Z: 0}},
	}

	ev.Accelerations(reg)
	verlet := NewVerlet()
	verlet.Step(ev, reg, 0.001)

	shrunk := reg[:2]
	verlet.Step(ev, shrunk, 0.001)

	for _, b := range shrunk {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			t.Fatalf("invalid state after shrink: %v", b)
		}
	}
}
