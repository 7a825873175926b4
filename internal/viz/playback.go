// Package viz renders stored runs in the terminal: an animated 3D
// playback and asciigraph summaries.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	trailLength  = 120
)

type TickMsg time.Time

// Playback replays the frames of a stored run as a rotating 3D projection
// with per-body trails. It never touches simulation state; frames are
// read-only input.
type Playback struct {
	runID  string
	frames []sim.Frame
	idx    int
	fps    int

	playing bool
	canvas  *Canvas
	camera  *Camera
	scale   float64
	trails  map[string][]vec.Vec3
}

// NewPlayback sizes the camera so every frame fits the canvas.
func NewPlayback(runID string, frames []sim.Frame, fps int) Playback {
	if fps <= 0 {
		fps = 30
	}

	bound := 1.0
	for _, f := range frames {
		for _, b := range f.Bodies {
			for _, c := range b.Position {
				if v := abs(c); v > bound {
					bound = v
				}
			}
		}
	}

	return Playback{
		runID:   runID,
		frames:  frames,
		fps:     fps,
		playing: true,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		scale:   1 / bound,
		trails:  make(map[string][]vec.Vec3),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (p Playback) Init() tea.Cmd {
	return p.tick()
}

func (p Playback) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (p Playback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.playing = !p.playing
		case "r":
			p.idx = 0
			p.trails = make(map[string][]vec.Vec3)
		case "[":
			p.step(-1)
		case "]":
			p.step(1)
		case "left":
			p.camera.RotateY(-0.1)
		case "right":
			p.camera.RotateY(0.1)
		case "up":
			p.camera.RotateX(-0.1)
		case "down":
			p.camera.RotateX(0.1)
		case "+", "=":
			p.camera.ZoomIn()
		case "-":
			p.camera.ZoomOut()
		}
		return p, nil

	case TickMsg:
		if p.playing {
			p.step(1)
		}
		return p, p.tick()
	}

	return p, nil
}

func (p *Playback) step(delta int) {
	if len(p.frames) == 0 {
		return
	}
	next := p.idx + delta
	if next < 0 {
		next = 0
	}
	if next >= len(p.frames) {
		next = len(p.frames) - 1
		p.playing = false
	}
	if next != p.idx {
		p.idx = next
		p.recordTrails()
	}
}

func (p *Playback) recordTrails() {
	for _, b := range p.frames[p.idx].Bodies {
		pos := vec.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}.Scale(p.scale)
		trail := append(p.trails[b.Name], pos)
		if len(trail) > trailLength {
			trail = trail[len(trail)-trailLength:]
		}
		p.trails[b.Name] = trail
	}
}

func (p Playback) View() string {
	if len(p.frames) == 0 {
		return "no frames to play\n"
	}

	p.canvas.Clear()
	sw, sh := canvasWidth*2, canvasHeight*4

	frame := p.frames[p.idx]
	live := make(map[string]bool, len(frame.Bodies))

	for _, b := range frame.Bodies {
		live[b.Name] = true
		for _, t := range p.trails[b.Name] {
			if x, y, ok := p.camera.Project(t, sw, sh); ok {
				p.canvas.Set(x, y)
			}
		}
	}

	for _, b := range frame.Bodies {
		pos := vec.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}.Scale(p.scale)
		if x, y, ok := p.camera.Project(pos, sw, sh); ok {
			// a small cross makes the body stand out from its trail
			p.canvas.Set(x, y)
			p.canvas.Set(x+1, y)
			p.canvas.Set(x-1, y)
			p.canvas.Set(x, y+1)
			p.canvas.Set(x, y-1)
		}
	}

	status := "playing"
	if !p.playing {
		status = "paused"
	}

	stats := headerStyle.Render("gravsim playback") + "\n" +
		labelStyle.Render("run") + valueStyle.Render(p.runID) + "\n" +
		labelStyle.Render("frame") + valueStyle.Render(fmt.Sprintf("%d/%d (step %d)", p.idx+1, len(p.frames), frame.Step)) + "\n" +
		labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4g s", frame.Time)) + "\n" +
		labelStyle.Render("bodies") + valueStyle.Render(fmt.Sprintf("%d", len(frame.Bodies))) + "\n" +
		labelStyle.Render("status") + valueStyle.Render(status) +
		helpStyle.Render("\nspace pause · [/] scrub · arrows rotate\n+/- zoom · r restart · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(p.canvas.String()),
		statsStyle.Render(stats),
	)
}

// Run starts the playback program in the alternate screen.
func Run(runID string, frames []sim.Frame, fps int) error {
	model := NewPlayback(runID, frames, fps)
	model.recordTrails()
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
