package metrics

import (
	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

// Peak records the largest infected count seen during a run and when it
// happened. The first maximum wins on a plateau.
type Peak struct {
	name    string
	maxI    float64
	day     float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_infected"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x epi.State, t float64) {
	if x[model.Infected] > p.maxI {
		p.maxI = x[model.Infected]
		p.day = t
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	return p.maxI
}

// Day returns when the peak occurred.
func (p *Peak) Day() float64 {
	return p.day
}

func (p *Peak) Reset() {
	p.maxI = 0
	p.day = 0
	p.samples = 0
}
