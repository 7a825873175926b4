package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/sim"
)

// CountSeries extracts the body count per frame.
func CountSeries(frames []sim.Frame) []float64 {
	series := make([]float64, len(frames))
	for i, f := range frames {
		series[i] = float64(len(f.Bodies))
	}
	return series
}

// MassSeries extracts the total mass per frame.
func MassSeries(frames []sim.Frame) []float64 {
	series := make([]float64, len(frames))
	for i, f := range frames {
		for _, b := range f.Bodies {
			series[i] += b.Mass
		}
	}
	return series
}

// CoordinateSeries extracts one position component of a named body across
// frames, stopping at the frame where the body disappears into a merge.
func CoordinateSeries(frames []sim.Frame, name string, axis int) []float64 {
	var series []float64
	for _, f := range frames {
		found := false
		for _, b := range f.Bodies {
			if b.Name == name {
				series = append(series, b.Position[axis])
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return series
}

// RenderPlot draws a captioned terminal graph of the series.
func RenderPlot(series []float64, caption string) string {
	if len(series) == 0 {
		return "no data"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
}
