package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/kanuel/episim/internal/sim"
)

// Curves renders the three compartment trajectories as one overlaid
// terminal chart.
func Curves(series sim.Series, width, height int) string {
	data := [][]float64{
		series.SusceptibleSeries(),
		series.InfectedSeries(),
		series.RecoveredSeries(),
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("susceptible (blue) / infected (red) / recovered (green)"),
	)
}

// InfectedCurve renders only the infected compartment, used by the live
// view and the sweep summaries.
func InfectedCurve(values []float64, width, height int, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
