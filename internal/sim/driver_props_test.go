package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

type collectWriter struct {
	frames []sim.Frame
}

func (w *collectWriter) WriteFrame(f sim.Frame) error {
	w.frames = append(w.frames, f)
	return nil
}

type countObserver struct {
	counts []int
}

func (o *countObserver) OnStep(reg body.Registry, step int, t float64) {
	o.counts = append(o.counts, len(reg))
}

var _ = Describe("Driver", func() {
	newDriver := func(cfg sim.Config) *sim.Driver {
		d, err := sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	Describe("a run with collisions", func() {
		var (
			reg    body.Registry
			result *sim.Result
			obs    *countObserver
			mass0  float64
			p0     vec.Vec3
		)

		BeforeEach(func() {
			// two overlapping pairs plus two distant spectators; the pairs
			// merge on the first pass, the spectators never do
			reg = body.Registry{
				{Name: "a1", Mass: 1, Radius: 1, Position: vec.Vec3{X: 0, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0.1, Y: 0, Z: 0}},
				{Name: "a2", Mass: 2, Radius: 1, Position: vec.Vec3{X: 1.5, Y: 0, Z: 0}, Velocity: vec.Vec3{X: -0.1, Y: 0.2, Z: 0}},
				{Name: "b1", Mass: 3, Radius: 1, Position: vec.Vec3{X: 100, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0, Y: 0.05, Z: 0}},
				{Name: "b2", Mass: 1, Radius: 1, Position: vec.Vec3{X: 101, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0, Y: -0.05, Z: 0.1}},
				{Name: "s1", Mass: 5, Radius: 0.5, Position: vec.Vec3{X: 0, Y: 500, Z: 0}},
				{Name: "s2", Mass: 4, Radius: 0.5, Position: vec.Vec3{X: 0, Y: -500, Z: 0}},
			}
			mass0 = reg.TotalMass()
			p0 = reg.Momentum()

			d := newDriver(sim.Config{G: 1e-4, Dt: 0.001, Epsilon: 0.01, Steps: 50, SnapshotInterval: 10})
			obs = &countObserver{}
			d.AddObserver(obs)

			var err error
			result, err = d.Run(context.Background(), reg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("merges the overlapping pairs", func() {
			Expect(result.Merges).To(HaveLen(2))
			Expect(result.Final).To(HaveLen(4))
		})

		It("conserves total mass exactly through merges", func() {
			Expect(result.Final.TotalMass()).To(BeNumerically("~", mass0, 1e-9*mass0))
			for _, e := range result.Merges {
				Expect(e.Mass).To(BeNumerically(">", 0))
			}
		})

		It("conserves system momentum across steps and merges", func() {
			diff := result.Final.Momentum().Sub(p0).Length()
			Expect(diff).To(BeNumerically("<", 1e-9))
		})

		It("shrinks the registry monotonically", func() {
			prev := len(reg)
			for _, n := range obs.counts {
				Expect(n).To(BeNumerically("<=", prev))
				prev = n
			}
		})

		It("accounts every removal to a merge event", func() {
			Expect(len(result.Final)).To(Equal(6 - len(result.Merges)))
		})
	})

	Describe("snapshot emission", func() {
		It("writes the initial frame, every interval, and the terminal state", func() {
			reg := body.Registry{
				{Name: "a", Mass: 1, Radius: 0.1, Position: vec.Vec3{X: -50}},
				{Name: "b", Mass: 1, Radius: 0.1, Position: vec.Vec3{X: 50}},
			}

			d := newDriver(sim.Config{G: 1e-6, Dt: 0.01, Epsilon: 0.01, Steps: 10, SnapshotInterval: 3})
			w := &collectWriter{}
			d.SetWriter(w)

			result, err := d.Run(context.Background(), reg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.StepsTaken).To(Equal(10))

			steps := make([]int, len(w.frames))
			for i, f := range w.frames {
				steps[i] = f.Step
			}
			Expect(steps).To(Equal([]int{0, 3, 6, 9, 10}))
		})

		It("does not duplicate the final frame when it lands on the cadence", func() {
			reg := body.Registry{
				{Name: "a", Mass: 1, Radius: 0.1, Position: vec.Vec3{X: -50}},
				{Name: "b", Mass: 1, Radius: 0.1, Position: vec.Vec3{X: 50}},
			}

			d := newDriver(sim.Config{G: 1e-6, Dt: 0.01, Epsilon: 0.01, Steps: 9, SnapshotInterval: 3})
			w := &collectWriter{}
			d.SetWriter(w)

			_, err := d.Run(context.Background(), reg)
			Expect(err).NotTo(HaveOccurred())

			steps := make([]int, len(w.frames))
			for i, f := range w.frames {
				steps[i] = f.Step
			}
			Expect(steps).To(Equal([]int{0, 3, 6, 9}))
		})
	})

	Describe("early termination", func() {
		It("halts once a single body remains", func() {
			reg := body.Registry{
				{Name: "a", Mass: 1, Radius: 1, Position: vec.Vec3{X: -0.5}},
				{Name: "b", Mass: 1, Radius: 1, Position: vec.Vec3{X: 0.5}},
			}

			d := newDriver(sim.Config{G: 1.0, Dt: 0.001, Epsilon: 0.01, Steps: 1000, SnapshotInterval: 100})
			w := &collectWriter{}
			d.SetWriter(w)

			result, err := d.Run(context.Background(), reg)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.HaltedEarly).To(BeTrue())
			Expect(result.StepsTaken).To(BeNumerically("<", 1000))
			Expect(result.Final).To(HaveLen(1))
			Expect(result.Final[0].Name).To(Equal("a+b"))

			last := w.frames[len(w.frames)-1]
			Expect(last.Bodies).To(HaveLen(1))
			Expect(last.Step).To(Equal(result.StepsTaken))
		})
	})

	Describe("determinism", func() {
		It("produces identical results for identical inputs", func() {
			build := func() body.Registry {
				return body.Registry{
					{Name: "a", Mass: 2, Radius: 0.2, Position: vec.Vec3{X: -1, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0, Y: 0.4, Z: 0}},
					{Name: "b", Mass: 2, Radius: 0.2, Position: vec.Vec3{X: 1, Y: 0, Z: 0}, Velocity: vec.Vec3{X: 0, Y: -0.4, Z: 0}},
					{Name: "c", Mass: 0.1, Radius: 0.1, Position: vec.Vec3{X: 0, Y: 3, Z: 0}, Velocity: vec.Vec3{X: 0.3, Y: 0, Z: 0}},
				}
			}
			cfg := sim.Config{G: 1.0, Dt: 0.005, Epsilon: 0.01, Steps: 500, SnapshotInterval: 50}

			r1, err := newDriver(cfg).Run(context.Background(), build())
			Expect(err).NotTo(HaveOccurred())
			r2, err := newDriver(cfg).Run(context.Background(), build())
			Expect(err).NotTo(HaveOccurred())

			Expect(r2.StepsTaken).To(Equal(r1.StepsTaken))
			Expect(r2.Final).To(HaveLen(len(r1.Final)))
			for i := range r1.Final {
				Expect(*r2.Final[i]).To(Equal(*r1.Final[i]))
			}
		})
	})
})
