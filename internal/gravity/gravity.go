// Package gravity evaluates pairwise Newtonian attraction over a registry.
//
// The evaluation is O(N^2) per call. That is a documented scope limit of
// this engine: there is no tree code or other spatial approximation.
package gravity

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/vec"
)

// Evaluator computes net gravitational accelerations.
//
// Epsilon is the softening distance: for separations below Epsilon the
// inverse-square denominator is clamped to Epsilon^2, so the force magnitude
// at any closer range equals the force at exactly Epsilon. This keeps
// near-coincident pairs finite until the collision pass can merge them.
type Evaluator struct {
	G       float64
	Epsilon float64
}

func New(g, epsilon float64) *Evaluator {
	return &Evaluator{G: g, Epsilon: epsilon}
}

// Accelerations recomputes the acceleration of every body from all others.
// It writes only the Acceleration fields; everything else is read-only.
func (e *Evaluator) Accelerations(reg body.Registry) {
	eps2 := e.Epsilon * e.Epsilon

	for _, b := range reg {
		b.Acceleration = vec.Vec3{}
	}

	for i := 0; i < len(reg); i++ {
		bi := reg[i]
		for j := i + 1; j < len(reg); j++ {
			bj := reg[j]

			r := bj.Position.Sub(bi.Position)
			r2 := r.LengthSq()
			if r2 == 0 {
				// coincident pair; direction is undefined, leave it to the
				// collision pass
				continue
			}
			if r2 < eps2 {
				r2 = eps2
			}

			unit := r.Normalize()
			mag := e.G / r2

			bi.Acceleration = bi.Acceleration.Add(unit.Scale(mag * bj.Mass))
			bj.Acceleration = bj.Acceleration.Sub(unit.Scale(mag * bi.Mass))
		}
	}
}

// AccelerationOn returns the net acceleration a single body would feel from
// the rest of the registry, without touching any state.
func (e *Evaluator) AccelerationOn(target *body.Body, reg body.Registry) vec.Vec3 {
	eps2 := e.Epsilon * e.Epsilon
	var acc vec.Vec3

	for _, b := range reg {
		if b == target {
			continue
		}
		r := b.Position.Sub(target.Position)
		r2 := r.LengthSq()
		if r2 == 0 {
			continue
		}
		if r2 < eps2 {
			r2 = eps2
		}
		acc = acc.Add(r.Normalize().Scale(e.G * b.Mass / r2))
	}

	return acc
}

// Energy returns the total mechanical energy: kinetic plus pairwise
// potential. Separations below Epsilon are clamped the same way the force
// is, so the potential stays finite too.
func (e *Evaluator) Energy(reg body.Registry) float64 {
	ke := 0.0
	pe := 0.0

	for i, bi := range reg {
		ke += 0.5 * bi.Mass * bi.Velocity.LengthSq()

		for j := i + 1; j < len(reg); j++ {
			bj := reg[j]
			r := bj.Position.Sub(bi.Position).Length()
			r = math.Max(r, e.Epsilon)
			if r == 0 {
				continue
			}
			pe -= e.G * bi.Mass * bj.Mass / r
		}
	}

	return ke + pe
}
