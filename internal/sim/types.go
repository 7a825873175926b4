package sim

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/collide"
)

// Config is the parameter surface the driver consumes. Units are whatever
// the scenario uses; the defaults elsewhere in the repo are km, kg, s.
type Config struct {
	G                float64 // gravitational constant
	Dt               float64 // fixed time step
	Epsilon          float64 // softening distance for the force evaluation
	Steps            int     // total step budget
	SnapshotInterval int     // emit a frame every this many steps
}

// Frame is one recorded snapshot of the run, in step order. Frames carry
// full body state so stored runs can be replayed or analyzed later.
type Frame struct {
	Step   int
	Time   float64
	Bodies []BodyState
}

// BodyState is the per-body portion of a frame.
type BodyState struct {
	Name     string
	Mass     float64
	Radius   float64
	Position [3]float64
	Velocity [3]float64
}

// FrameWriter receives snapshot frames from the driver. Storage format and
// medium are the implementation's concern; the driver only hands it a
// read-only copy of the registry state.
type FrameWriter interface {
	WriteFrame(f Frame) error
}

// Metric observes the registry once per step and reduces to a single value
// at the end of the run.
type Metric interface {
	Name() string
	Observe(reg body.Registry, t float64)
	Value() float64
	Reset()
}

// Observer is notified after each completed step.
type Observer interface {
	OnStep(reg body.Registry, step int, t float64)
}

// Result summarizes a completed run.
type Result struct {
	StepsTaken  int
	FinalTime   float64
	Final       body.Registry
	Merges      []collide.Event
	Metrics     map[string]float64
	EnergyDrift float64
	HaltedEarly bool
}

// CaptureFrame copies the registry into a frame value.
func CaptureFrame(reg body.Registry, step int, t float64) Frame {
	f := Frame{Step: step, Time: t, Bodies: make([]BodyState, len(reg))}
	for i, b := range reg {
		f.Bodies[i] = BodyState{
			Name:     b.Name,
			Mass:     b.Mass,
			Radius:   b.Radius,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Velocity: [3]float64{b.Velocity.X, b.Velocity.Y, b.Velocity.Z},
		}
	}
	return f
}
