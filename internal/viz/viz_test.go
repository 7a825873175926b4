package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

func TestCanvas_SetAndRender(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3) // out of bounds, ignored
	c.Set(100, 100)

	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rendered rows, got %d", len(lines))
	}
	if []rune(lines[0])[0] == 0x2800 {
		t.Error("first cell should not be empty after Set(0,0)")
	}

	c.Clear()
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Errorf("Clear left lit cell %q", r)
		}
	}
}

func TestCamera_ProjectCenters(t *testing.T) {
	cam := NewCamera()

	x, y, ok := cam.Project(vec.Vec3{}, 160, 96)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 80 || y != 48 {
		t.Errorf("origin projected to (%d,%d), want screen center (80,48)", x, y)
	}

	// +X should land right of center, +Y above
	x2, _, ok := cam.Project(vec.Vec3{X: 0.5}, 160, 96)
	if !ok || x2 <= x {
		t.Errorf("+X point projected to x=%d, want > %d", x2, x)
	}
	_, y2, ok := cam.Project(vec.Vec3{Y: 0.5}, 160, 96)
	if !ok || y2 >= y {
		t.Errorf("+Y point projected to y=%d, want < %d", y2, y)
	}
}

func TestCamera_ZoomBounds(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom exceeded cap: %v", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("zoom below floor: %v", cam.Zoom)
	}
}

func sampleFrames() []sim.Frame {
	return []sim.Frame{
		{Step: 0, Time: 0, Bodies: []sim.BodyState{
			{Name: "a", Mass: 1, Position: [3]float64{1, 0, 0}},
			{Name: "b", Mass: 2, Position: [3]float64{-1, 0, 0}},
		}},
		{Step: 10, Time: 100, Bodies: []sim.BodyState{
			{Name: "a+b", Mass: 3, Position: [3]float64{0, 0, 0}},
		}},
	}
}

func TestSeries(t *testing.T) {
	frames := sampleFrames()

	counts := CountSeries(frames)
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("CountSeries = %v, want [2 1]", counts)
	}

	masses := MassSeries(frames)
	if masses[0] != 3 || masses[1] != 3 {
		t.Errorf("MassSeries = %v, want [3 3]", masses)
	}

	xs := CoordinateSeries(frames, "a", 0)
	if len(xs) != 1 || xs[0] != 1 {
		t.Errorf("CoordinateSeries should stop when the body merges away, got %v", xs)
	}

	if got := CoordinateSeries(frames, "ghost", 0); len(got) != 0 {
		t.Errorf("unknown body should yield empty series, got %v", got)
	}
}

func TestRenderPlot(t *testing.T) {
	if got := RenderPlot(nil, "x"); got != "no data" {
		t.Errorf("empty series: %q", got)
	}
	out := RenderPlot([]float64{1, 2, 3, 2, 1}, "bodies")
	if !strings.Contains(out, "bodies") {
		t.Error("caption missing from plot")
	}
}

func TestPlayback_ViewRendersFrame(t *testing.T) {
	p := NewPlayback("solar_1", sampleFrames(), 30)
	p.recordTrails()

	out := p.View()
	if !strings.Contains(out, "solar_1") {
		t.Error("view should include the run id")
	}
	if !strings.Contains(out, "1/2") {
		t.Error("view should show frame position")
	}
}

func TestPlayback_StepClamps(t *testing.T) {
	p := NewPlayback("r", sampleFrames(), 30)

	p.step(-5)
	if p.idx != 0 {
		t.Errorf("idx after stepping below zero = %d", p.idx)
	}

	p.step(10)
	if p.idx != 1 {
		t.Errorf("idx after stepping past end = %d, want last frame", p.idx)
	}
	if p.playing {
		t.Error("reaching the end should pause playback")
	}
}
