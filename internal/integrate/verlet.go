// Package integrate advances registry state through time.
package integrate

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vec"
)

// Verlet steps a registry with the velocity-Verlet scheme:
//
//  1. x += v*dt + 0.5*a_old*dt^2
//  2. recompute accelerations at the new positions
//  3. v += 0.5*(a_old + a_new)*dt
//
// The symmetric half-step velocity update is what keeps long-run energy
// drift bounded where explicit Euler accumulates it. Bodies must enter Step
// with accelerations already evaluated at their current positions.
type Verlet struct {
	oldAcc []vec.Vec3
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if cap(v.oldAcc) < n {
		v.oldAcc = make([]vec.Vec3, n)
	}
	v.oldAcc = v.oldAcc[:n]
}

// Step advances every body in reg by one fixed time step dt, mutating
// positions and velocities in place. The force evaluation for all bodies
// completes before any velocity is updated, so no body ever sees a
// partially advanced registry.
func (v *Verlet) Step(ev *gravity.Evaluator, reg body.Registry, dt float64) {
	v.ensureScratch(len(reg))
	dt2 := dt * dt

	for i, b := range reg {
		v.oldAcc[i] = b.Acceleration
		b.Position = b.Position.
			Add(b.Velocity.Scale(dt)).
			Add(b.Acceleration.Scale(0.5 * dt2))
	}

	ev.Accelerations(reg)

	halfDt := 0.5 * dt
	for i, b := range reg {
		b.Velocity = b.Velocity.Add(v.oldAcc[i].Add(b.Acceleration).Scale(halfDt))
	}
}
