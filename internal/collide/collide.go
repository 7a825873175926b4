// Package collide detects overlapping bodies after an integration step and
// merges them inelastically.
package collide

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
)

// Event records one merge for reporting and snapshot metadata.
type Event struct {
	Step     int
	A, B     string
	Name     string
	Mass     float64
	Distance float64
}

// Resolver merges every overlapping pair in a registry. Two bodies collide
// when their separation is at most the sum of their radii.
//
// Merges resolve sequentially in ascending index order of the registry at
// the start of the pass, and a merged body is re-tested against all later
// bodies immediately, so chained overlaps collapse within a single pass.
// The order is a deterministic tie-break, not a physical statement: a
// simultaneous N-way merge would give a slightly different center of mass.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve scans reg for overlaps and returns the (possibly shorter)
// registry along with the merge events that occurred. The input slice is
// not usable afterwards; callers keep the returned one.
func (r *Resolver) Resolve(reg body.Registry, step int) (body.Registry, []Event) {
	var events []Event

	for i := 0; i < len(reg); i++ {
		for j := i + 1; j < len(reg); {
			dist := reg[j].Position.Sub(reg[i].Position).Length()
			if dist > reg[i].Radius+reg[j].Radius {
				j++
				continue
			}

			merged := Merge(reg[i], reg[j])
			events = append(events, Event{
				Step:     step,
				A:        reg[i].Name,
				B:        reg[j].Name,
				Name:     merged.Name,
				Mass:     merged.Mass,
				Distance: dist,
			})

			reg[i] = merged
			reg = append(reg[:j], reg[j+1:]...)
			// j stays put: the slice shifted and the merged body at i must
			// be checked against the new occupant of j
		}
	}

	return reg, events
}

// Merge combines two bodies into one:
//
//   - mass adds exactly
//   - position is the center of mass
//   - velocity conserves momentum
//   - radius preserves volume under constant density: (r_a^3 + r_b^3)^(1/3)
//   - the name concatenates both, recording the merge lineage
//
// The merged body's acceleration is zeroed; the next force evaluation
// rewrites it.
func Merge(a, b *body.Body) *body.Body {
	mass := a.Mass + b.Mass

	return &body.Body{
		Name:     a.Name + "+" + b.Name,
		Mass:     mass,
		Radius:   math.Cbrt(a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius),
		Position: a.Position.Scale(a.Mass).Add(b.Position.Scale(b.Mass)).Scale(1 / mass),
		Velocity: a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass)).Scale(1 / mass),
	}
}
