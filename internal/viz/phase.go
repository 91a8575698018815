package viz

import (
	"fmt"
	"strings"

	"github.com/kanuel/episim/internal/sim"
)

// PhasePortrait draws the S-vs-I trajectory of a completed run onto a
// braille canvas. Width and height are in character cells.
func PhasePortrait(series sim.Series, width, height int) string {
	if len(series) == 0 {
		return ""
	}

	minX, maxX := series[0].Susceptible, series[0].Susceptible
	minY, maxY := series[0].Infected, series[0].Infected
	for _, rec := range series {
		if rec.Susceptible < minX {
			minX = rec.Susceptible
		}
		if rec.Susceptible > maxX {
			maxX = rec.Susceptible
		}
		if rec.Infected < minY {
			minY = rec.Infected
		}
		if rec.Infected > maxY {
			maxY = rec.Infected
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := NewCanvas(width, height)
	subW := width*2 - 1
	subH := height*4 - 1

	for _, rec := range series {
		x := int((rec.Susceptible - minX) / rangeX * float64(subW))
		y := subH - int((rec.Infected-minY)/rangeY*float64(subH))
		canvas.Set(x, y)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I max %.1f\n", maxY))
	sb.WriteString(canvas.String())
	sb.WriteString(fmt.Sprintf("S: %.1f .. %.1f\n", minX, maxX))
	return sb.String()
}
