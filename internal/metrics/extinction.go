package metrics

import (
	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

// Extinction records the first time the infected compartment drops below
// one individual after the outbreak has started. Value is -1 while the
// epidemic is still burning.
type Extinction struct {
	name    string
	started bool
	day     float64
	found   bool
}

func NewExtinction() *Extinction {
	return &Extinction{name: "extinction_day"}
}

func (e *Extinction) Name() string { return e.name }

func (e *Extinction) Observe(x epi.State, t float64) {
	i := x[model.Infected]
	if i >= 1 {
		e.started = true
		return
	}
	if e.started && !e.found {
		e.day = t
		e.found = true
	}
}

func (e *Extinction) Value() float64 {
	if !e.found {
		return -1
	}
	return e.day
}

func (e *Extinction) Reset() {
	e.started = false
	e.day = 0
	e.found = false
}
