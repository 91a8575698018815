package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/kanuel/episim/internal/sim"
)

// Compartment curve colors, matching the conventional SIR palette.
const (
	colorSusceptible = "#4477ff"
	colorInfected    = "#ff4444"
	colorRecovered   = "#00cc66"
	colorBackground  = "#0a0a0a"
)

// SeriesToSVG renders S/I/R versus day as three polylines on a shared
// scale from zero to the series' largest total.
func SeriesToSVG(series sim.Series, width, height int) string {
	if len(series) < 2 {
		return ""
	}

	maxY := 0.0
	for _, rec := range series {
		if rec.Total > maxY {
			maxY = rec.Total
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	minDay := series[0].Day
	dayRange := series.Last().Day - minDay
	if dayRange == 0 {
		dayRange = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, colorBackground))

	curves := []struct {
		color  string
		values []float64
	}{
		{colorSusceptible, series.SusceptibleSeries()},
		{colorInfected, series.InfectedSeries()},
		{colorRecovered, series.RecoveredSeries()},
	}

	for _, curve := range curves {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, curve.color))
		for i, v := range curve.values {
			x := (series[i].Day - minDay) / dayRange * float64(width)
			y := float64(height) - v/maxY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<g font-family="monospace" font-size="12">
<text x="8" y="16" fill="%s">susceptible</text>
<text x="8" y="32" fill="%s">infected</text>
<text x="8" y="48" fill="%s">recovered</text>
</g>
</svg>`, colorSusceptible, colorInfected, colorRecovered))

	return sb.String()
}

// PhaseToSVG renders the S-vs-I phase portrait as a single path.
func PhaseToSVG(series sim.Series, width, height int) string {
	if len(series) < 2 {
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
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, colorBackground, colorInfected))

	for i, rec := range series {
		x := (rec.Susceptible - minX) / rangeX * float64(width)
		y := float64(height) - (rec.Infected-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SVGToFile writes rendered SVG markup to the given path.
func SVGToFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
