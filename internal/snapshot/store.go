// Package snapshot persists simulation frames to per-run directories so
// trajectories can be replayed and analyzed after the run.
//
// Layout under the base directory:
//
//	<run_id>/metadata.json   run parameters and summary metrics
//	<run_id>/frames.csv      one row per body per frame, in step order
//
// The CSV is long-format (step,time,name,...) so rows stay rectangular
// even as merges shrink the registry from frame to frame.
package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
)

var frameHeader = []string{"step", "time", "name", "mass", "radius", "x", "y", "z", "vx", "vy", "vz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID               string             `json:"id"`
	Scenario         string             `json:"scenario"`
	Timestamp        time.Time          `json:"timestamp"`
	G                float64            `json:"g"`
	Dt               float64            `json:"dt"`
	Epsilon          float64            `json:"epsilon"`
	Steps            int                `json:"steps"`
	SnapshotInterval int                `json:"snapshot_interval"`
	StepsTaken       int                `json:"steps_taken"`
	HaltedEarly      bool               `json:"halted_early"`
	InitialBodies    int                `json:"initial_bodies"`
	FinalBodies      int                `json:"final_bodies"`
	Merges           int                `json:"merges"`
	Metrics          map[string]float64 `json:"metrics,omitempty"`
}

// RunWriter streams frames to disk as the driver emits them and finalizes
// the run metadata on Close. It satisfies sim.FrameWriter.
type RunWriter struct {
	meta RunMetadata
	dir  string
	file *os.File
	csv  *csv.Writer
}

// NewRun allocates a run directory and opens its frame stream. The run ID
// is scenario-qualified and unique per invocation.
func (s *Store) NewRun(scenarioName string, cfg sim.Config, initialBodies int) (*RunWriter, error) {
	runID := fmt.Sprintf("%s_%d", scenarioName, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return nil, err
	}

	w := &RunWriter{
		meta: RunMetadata{
			ID:               runID,
			Scenario:         scenarioName,
			Timestamp:        time.Now(),
			G:                cfg.G,
			Dt:               cfg.Dt,
			Epsilon:          cfg.Epsilon,
			Steps:            cfg.Steps,
			SnapshotInterval: cfg.SnapshotInterval,
			InitialBodies:    initialBodies,
		},
		dir:  runDir,
		file: file,
		csv:  csv.NewWriter(file),
	}

	if err := w.csv.Write(frameHeader); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *RunWriter) ID() string { return w.meta.ID }

// WriteFrame appends a frame and flushes, so partial runs remain readable.
func (w *RunWriter) WriteFrame(f sim.Frame) error {
	for _, b := range f.Bodies {
		row := []string{
			strconv.Itoa(f.Step),
			strconv.FormatFloat(f.Time, 'g', -1, 64),
			b.Name,
			strconv.FormatFloat(b.Mass, 'g', -1, 64),
			strconv.FormatFloat(b.Radius, 'g', -1, 64),
			strconv.FormatFloat(b.Position[0], 'g', -1, 64),
			strconv.FormatFloat(b.Position[1], 'g', -1, 64),
			strconv.FormatFloat(b.Position[2], 'g', -1, 64),
			strconv.FormatFloat(b.Velocity[0], 'g', -1, 64),
			strconv.FormatFloat(b.Velocity[1], 'g', -1, 64),
			strconv.FormatFloat(b.Velocity[2], 'g', -1, 64),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close finalizes metadata from the run result and closes the frame file.
func (w *RunWriter) Close(result *sim.Result) error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}

	if result != nil {
		w.meta.StepsTaken = result.StepsTaken
		w.meta.HaltedEarly = result.HaltedEarly
		w.meta.FinalBodies = len(result.Final)
		w.meta.Merges = len(result.Merges)
		w.meta.Metrics = result.Metrics
	}

	file, err := os.Create(filepath.Join(w.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(w.meta)
}

// List returns metadata for every stored run, skipping unreadable entries.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's frames back in step order. Rows that fail to
// parse are skipped rather than failing the whole load.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var frames []sim.Frame
	var current *sim.Frame

	for i, rec := range records {
		if i == 0 {
			continue // header
		}

		step, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}

		floats := make([]float64, 9) // time, mass, radius, pos*3, vel*3
		ok := true
		for j, idx := range []int{1, 3, 4, 5, 6, 7, 8, 9, 10} {
			if floats[j], err = strconv.ParseFloat(rec[idx], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		if current == nil || current.Step != step {
			frames = append(frames, sim.Frame{Step: step, Time: floats[0]})
			current = &frames[len(frames)-1]
		}

		current.Bodies = append(current.Bodies, sim.BodyState{
			Name:     rec[2],
			Mass:     floats[1],
			Radius:   floats[2],
			Position: [3]float64{floats[3], floats[4], floats[5]},
			Velocity: [3]float64{floats[6], floats[7], floats[8]},
		})
	}

	return frames, nil
}
