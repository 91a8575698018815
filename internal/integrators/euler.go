package integrators

import "github.com/kanuel/episim/internal/epi"

// Euler is the explicit first-order scheme. At dt=1 with no control it
// reproduces the model's daily recurrence exactly.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys epi.System, x epi.State, u epi.Control, t float64, dt float64) epi.State {
	dx := sys.Derive(x, u, t)
	result := make(epi.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
