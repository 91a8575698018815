package model

import (
	"fmt"

	"github.com/kanuel/episim/internal/epi"
)

// Compartment indices into an SIR state vector.
const (
	Susceptible = 0
	Infected    = 1
	Recovered   = 2
)

// SIR is the classic Susceptible-Infected-Recovered compartment model:
//
//	dS/dt = -βSI/N
//	dI/dt = βSI/N - γI
//	dR/dt = γI
//
// Parameters are fixed at construction except through SetParam, which the
// live view uses for interactive adjustment.
type SIR struct {
	n     float64 // total population
	i0    float64 // initially infected
	beta  float64 // transmission rate
	gamma float64 // recovery rate
}

func New(population, initialInfected, beta, gamma float64) (*SIR, error) {
	switch {
	case population <= 0:
		return nil, fmt.Errorf("%w: population %g must be positive", epi.ErrInvalidParameter, population)
	case initialInfected < 0:
		return nil, fmt.Errorf("%w: initial infected %g must be non-negative", epi.ErrInvalidParameter, initialInfected)
	case initialInfected > population:
		return nil, fmt.Errorf("%w: initial infected %g exceeds population %g", epi.ErrInvalidParameter, initialInfected, population)
	case beta < 0:
		return nil, fmt.Errorf("%w: transmission rate %g must be non-negative", epi.ErrInvalidParameter, beta)
	case gamma < 0:
		return nil, fmt.Errorf("%w: recovery rate %g must be non-negative", epi.ErrInvalidParameter, gamma)
	}
	return &SIR{n: population, i0: initialInfected, beta: beta, gamma: gamma}, nil
}

func (m *SIR) StateDim() int       { return 3 }
func (m *SIR) Population() float64 { return m.n }
func (m *SIR) Beta() float64       { return m.beta }
func (m *SIR) Gamma() float64      { return m.gamma }

// InitialState returns (S0, I0, R0) with S0 = N - I0 and R0 = 0, so the
// compartments sum to N by construction.
func (m *SIR) InitialState() epi.State {
	return epi.State{m.n - m.i0, m.i0, 0}
}

// Derive evaluates the continuous-time right-hand side. A control input
// scales the transmission rate down by u[0].
func (m *SIR) Derive(x epi.State, u epi.Control, _ float64) epi.State {
	beta := m.beta
	if len(u) > 0 {
		beta *= 1 - u[0]
	}
	s, i := x[Susceptible], x[Infected]
	infections := beta * s * i / m.n
	recoveries := m.gamma * i
	return epi.State{-infections, infections - recoveries, recoveries}
}

// DiscreteStep advances one day with the unit-step recurrence:
//
//	newInfections = β·S·I/N
//	newRecoveries = γ·I
//
// This is forward Euler at Δt=1, kept exactly as the reference tabulation
// defines it. S may be driven negative under large β; that artifact is
// part of the recurrence and is not corrected here.
func (m *SIR) DiscreteStep(x epi.State) epi.State {
	s, i, r := x[Susceptible], x[Infected], x[Recovered]
	newInfections := m.beta * s * i / m.n
	newRecoveries := m.gamma * i
	return epi.State{
		s - newInfections,
		i + newInfections - newRecoveries,
		r + newRecoveries,
	}
}

// BasicReproduction returns R0 = β/γ.
func (m *SIR) BasicReproduction() (float64, error) {
	if m.gamma == 0 {
		return 0, epi.ErrZeroRecoveryRate
	}
	return m.beta / m.gamma, nil
}

// GetParams implements epi.Configurable.
func (m *SIR) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.beta, "gamma": m.gamma}
}

// SetParam implements epi.Configurable.
func (m *SIR) SetParam(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s %g must be non-negative", epi.ErrInvalidParameter, name, value)
	}
	switch name {
	case "beta":
		m.beta = value
	case "gamma":
		m.gamma = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", epi.ErrInvalidParameter, name)
	}
	return nil
}
