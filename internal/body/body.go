// Package body defines the point-mass Body and the ordered Registry the
// simulation mutates in place.
package body

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/vec"
)

// Body is one point mass. Acceleration is derived state, rewritten by the
// force evaluation each step; Radius participates only in collision checks.
type Body struct {
	Name         string
	Mass         float64
	Radius       float64
	Position     vec.Vec3
	Velocity     vec.Vec3
	Acceleration vec.Vec3
}

func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// Momentum returns m*v.
func (b *Body) Momentum() vec.Vec3 {
	return b.Velocity.Scale(b.Mass)
}

func (b *Body) IsValid() bool {
	return b.Mass > 0 && b.Radius >= 0 &&
		b.Position.IsValid() && b.Velocity.IsValid() && b.Acceleration.IsValid()
}

func (b *Body) String() string {
	return fmt.Sprintf("%s: m=%.4e r=%.4e p=[%.4e %.4e %.4e] v=[%.4e %.4e %.4e]",
		b.Name, b.Mass, b.Radius,
		b.Position.X, b.Position.Y, b.Position.Z,
		b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
}

// Registry is the ordered set of live bodies. Order is the merge tie-break
// order; the count only ever shrinks during a run.
type Registry []*Body

func (r Registry) Clone() Registry {
	c := make(Registry, len(r))
	for i, b := range r {
		c[i] = b.Clone()
	}
	return c
}

func (r Registry) TotalMass() float64 {
	total := 0.0
	for _, b := range r {
		total += b.Mass
	}
	return total
}

// Momentum returns the system momentum sum(m_i * v_i).
func (r Registry) Momentum() vec.Vec3 {
	var p vec.Vec3
	for _, b := range r {
		p = p.Add(b.Momentum())
	}
	return p
}

// AngularMomentum returns sum(r_i x m_i*v_i) about the origin.
func (r Registry) AngularMomentum() vec.Vec3 {
	var l vec.Vec3
	for _, b := range r {
		l = l.Add(b.Position.Cross(b.Momentum()))
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position. A nil or empty
// registry yields the origin.
func (r Registry) CenterOfMass() vec.Vec3 {
	total := r.TotalMass()
	if total == 0 {
		return vec.Vec3{}
	}
	var com vec.Vec3
	for _, b := range r {
		com = com.Add(b.Position.Scale(b.Mass))
	}
	return com.Scale(1 / total)
}

// IsValid reports whether every body holds finite state and positive mass.
func (r Registry) IsValid() bool {
	for _, b := range r {
		if !b.IsValid() {
			return false
		}
	}
	return true
}
