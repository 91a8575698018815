package model

import (
	"errors"
	"math"
	"testing"

	"github.com/kanuel/episim/internal/epi"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		population float64
		infected   float64
		beta       float64
		gamma      float64
		wantErr    bool
	}{
		{"valid", 1000, 1, 0.5, 0.1, false},
		{"zero gamma allowed", 1000, 1, 0.5, 0, false},
		{"zero infected allowed", 1000, 0, 0.5, 0.1, false},
		{"zero population", 0, 0, 0.5, 0.1, true},
		{"negative population", -10, 0, 0.5, 0.1, true},
		{"negative infected", 1000, -1, 0.5, 0.1, true},
		{"infected exceeds population", 100, 101, 0.5, 0.1, true},
		{"negative beta", 1000, 1, -0.5, 0.1, true},
		{"negative gamma", 1000, 1, 0.5, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.population, tt.infected, tt.beta, tt.gamma)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, epi.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m == nil {
				t.Fatal("expected model, got nil")
			}
		})
	}
}

func TestInitialState_SumsToPopulation(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	x0 := m.InitialState()
	if x0[Susceptible] != 999 || x0[Infected] != 1 || x0[Recovered] != 0 {
		t.Errorf("expected (999, 1, 0), got %v", x0)
	}
	if x0.Sum() != m.Population() {
		t.Errorf("compartments sum to %f, want %f", x0.Sum(), m.Population())
	}
}

func TestDerive(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	dx := m.Derive(m.InitialState(), nil, 0)

	wantInfections := 0.5 * 999 * 1 / 1000
	wantRecoveries := 0.1 * 1

	if math.Abs(dx[Susceptible]-(-wantInfections)) > 1e-12 {
		t.Errorf("dS = %v, want %v", dx[Susceptible], -wantInfections)
	}
	if math.Abs(dx[Infected]-(wantInfections-wantRecoveries)) > 1e-12 {
		t.Errorf("dI = %v, want %v", dx[Infected], wantInfections-wantRecoveries)
	}
	if math.Abs(dx[Recovered]-wantRecoveries) > 1e-12 {
		t.Errorf("dR = %v, want %v", dx[Recovered], wantRecoveries)
	}
}

func TestDerive_WithControl(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// Full contact reduction leaves only recoveries.
	dx := m.Derive(m.InitialState(), epi.Control{1.0}, 0)
	if dx[Susceptible] != 0 {
		t.Errorf("dS = %v, want 0 under full lockdown", dx[Susceptible])
	}
	if math.Abs(dx[Recovered]-0.1) > 1e-12 {
		t.Errorf("dR = %v, want 0.1", dx[Recovered])
	}
}

func TestDiscreteStep_DayOne(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// newInfections = 0.5*999*1/1000 = 0.4995, newRecoveries = 0.1.
	x1 := m.DiscreteStep(m.InitialState())

	if math.Abs(x1[Susceptible]-998.5005) > 1e-9 {
		t.Errorf("S1 = %v, want 998.5005", x1[Susceptible])
	}
	if math.Abs(x1[Infected]-1.3995) > 1e-9 {
		t.Errorf("I1 = %v, want 1.3995", x1[Infected])
	}
	if math.Abs(x1[Recovered]-0.1) > 1e-9 {
		t.Errorf("R1 = %v, want 0.1", x1[Recovered])
	}
}

func TestDiscreteStep_Conservation(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	x := m.InitialState()
	for day := 0; day < 200; day++ {
		x = m.DiscreteStep(x)
		if rel := math.Abs(x.Sum()-1000) / 1000; rel > 1e-9 {
			t.Fatalf("day %d: relative conservation drift %e", day+1, rel)
		}
	}
}

func TestDiscreteStep_NegativeSusceptiblePreserved(t *testing.T) {
	// Large beta overshoots at unit step size. The recurrence is applied
	// verbatim, never clamped.
	m, err := New(100, 50, 10, 0.01)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	x := m.InitialState()
	for day := 0; day < 5; day++ {
		x = m.DiscreteStep(x)
	}
	if x[Susceptible] >= 0 {
		t.Errorf("expected overshoot below zero, got S = %v", x[Susceptible])
	}
}

func TestBasicReproduction(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	r0, err := m.BasicReproduction()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r0 != 5.0 {
		t.Errorf("R0 = %v, want 5.0", r0)
	}

	degenerate, err := New(1000, 1, 0.5, 0)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := degenerate.BasicReproduction(); !errors.Is(err, epi.ErrZeroRecoveryRate) {
		t.Errorf("expected ErrZeroRecoveryRate, got %v", err)
	}
}

func TestSetParam(t *testing.T) {
	m, err := New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if err := m.SetParam("beta", 0.8); err != nil {
		t.Fatalf("set beta failed: %v", err)
	}
	if m.Beta() != 0.8 {
		t.Errorf("beta = %v, want 0.8", m.Beta())
	}

	if err := m.SetParam("beta", -1); err == nil {
		t.Error("expected error for negative beta")
	}
	if err := m.SetParam("delta", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
