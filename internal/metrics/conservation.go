package metrics

import (
	"math"

	"github.com/kanuel/episim/internal/epi"
)

// Conservation tracks the worst relative drift of total compartment mass
// from the model population. In exact arithmetic the recurrence conserves
// mass, so anything beyond rounding noise signals a broken step rule.
type Conservation struct {
	name       string
	population float64
	maxDrift   float64
	samples    int
}

func NewConservation(population float64) *Conservation {
	return &Conservation{
		name:       "conservation_drift",
		population: population,
	}
}

func (c *Conservation) Name() string { return c.name }

func (c *Conservation) Observe(x epi.State, t float64) {
	if c.population == 0 {
		return
	}
	drift := math.Abs(x.Sum()-c.population) / c.population
	c.maxDrift = math.Max(c.maxDrift, drift)
	c.samples++
}

func (c *Conservation) Value() float64 {
	return c.maxDrift
}

func (c *Conservation) Reset() {
	c.maxDrift = 0
	c.samples = 0
}
