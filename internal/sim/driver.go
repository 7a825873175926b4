// Package sim orchestrates the step loop: force evaluation, velocity-Verlet
// integration, collision merging, and periodic snapshot emission.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/collide"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/integrate"
)

// Driver owns the registry for the duration of a run and advances it
// deterministically: given the same initial registry and config, two runs
// produce identical results. It is single-threaded by design.
type Driver struct {
	cfg       Config
	evaluator *gravity.Evaluator
	verlet    *integrate.Verlet
	resolver  *collide.Resolver
	writer    FrameWriter
	metrics   []Metric
	observers []Observer
}

// New validates cfg and builds a driver. Invalid configuration fails here,
// before any stepping begins.
func New(cfg Config) (*Driver, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &Driver{
		cfg:       cfg,
		evaluator: gravity.New(cfg.G, cfg.Epsilon),
		verlet:    integrate.NewVerlet(),
		resolver:  collide.NewResolver(),
	}, nil
}

func validate(cfg Config) error {
	if cfg.G <= 0 {
		return fmt.Errorf("%w: G must be positive, got %g", ErrInvalidConfig, cfg.G)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be non-negative, got %g", ErrInvalidConfig, cfg.Epsilon)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.SnapshotInterval <= 0 {
		return fmt.Errorf("%w: snapshot interval must be positive, got %d", ErrInvalidConfig, cfg.SnapshotInterval)
	}
	return nil
}

func (d *Driver) SetWriter(w FrameWriter) { d.writer = w }
func (d *Driver) AddMetric(m Metric)      { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer)  { d.observers = append(d.observers, o) }
func (d *Driver) Config() Config          { return d.cfg }

// Run advances reg until the step budget is spent or a single body remains.
// A one-body registry has no interactions left, so the driver halts early
// and reports it via Result.HaltedEarly; the terminal state is always
// flushed as a final frame either way.
//
// Each tick runs the force evaluation for every body to completion before
// any position advances, then integrates, then resolves collisions against
// the freshly integrated positions. The registry passed in is mutated in
// place step by step; Run returns the surviving slice in Result.Final.
//
// Context cancellation is checked between steps and surfaces as the
// context's error.
func (d *Driver) Run(ctx context.Context, reg body.Registry) (*Result, error) {
	if len(reg) == 0 {
		return nil, ErrEmptyRegistry
	}
	for _, b := range reg {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("%w: body %q has mass %g", ErrMassInvariant, b.Name, b.Mass)
		}
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	d.evaluator.Accelerations(reg)
	initialEnergy := d.evaluator.Energy(reg)

	if err := d.emit(reg, 0, 0); err != nil {
		return nil, err
	}

	t := 0.0
	lastEmitted := 0

	for step := 1; step <= d.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		d.verlet.Step(d.evaluator, reg, d.cfg.Dt)
		t += d.cfg.Dt

		var events []collide.Event
		reg, events = d.resolver.Resolve(reg, step)
		result.Merges = append(result.Merges, events...)

		if err := d.check(reg, step, t); err != nil {
			return result, err
		}

		for _, m := range d.metrics {
			m.Observe(reg, t)
		}
		for _, o := range d.observers {
			o.OnStep(reg, step, t)
		}

		result.StepsTaken = step
		result.FinalTime = t

		if step%d.cfg.SnapshotInterval == 0 {
			if err := d.emit(reg, step, t); err != nil {
				return result, err
			}
			lastEmitted = step
		}

		if len(reg) == 1 {
			result.HaltedEarly = true
			break
		}
	}

	if lastEmitted != result.StepsTaken {
		if err := d.emit(reg, result.StepsTaken, t); err != nil {
			return result, err
		}
	}

	finalEnergy := d.evaluator.Energy(reg)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	result.Final = reg
	return result, nil
}

func (d *Driver) check(reg body.Registry, step int, t float64) error {
	for _, b := range reg {
		if b.Mass <= 0 {
			return &SimError{Step: step, Time: t,
				Wrapped: fmt.Errorf("%w: body %q has mass %g", ErrMassInvariant, b.Name, b.Mass)}
		}
		if !b.IsValid() {
			return &SimError{Step: step, Time: t,
				Wrapped: fmt.Errorf("%w: body %q", ErrUnstable, b.Name)}
		}
	}
	return nil
}

func (d *Driver) emit(reg body.Registry, step int, t float64) error {
	if d.writer == nil {
		return nil
	}
	if err := d.writer.WriteFrame(CaptureFrame(reg, step, t)); err != nil {
		return fmt.Errorf("sim: writing frame at step %d: %w", step, err)
	}
	return nil
}
