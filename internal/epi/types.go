package epi

import "math"

// State holds compartment sizes, one entry per compartment.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total mass across all compartments.
func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Control is an intervention input. For SIR, u[0] is the fractional
// reduction of the transmission rate (0 = no intervention).
type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, u Control, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, u Control, t, dt, tol float64) (State, float64, error)
}

// Policy computes an intervention from the current state. Policies only
// affect continuous-mode runs; the discrete recurrence is fixed.
type Policy interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config carries step-control knobs for continuous-mode integration.
type Config struct {
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-8,
		MaxDt:         1.0,
		MinDt:         1e-10,
		ValidateState: true,
	}
}
