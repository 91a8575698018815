package integrators

import (
	"math"
	"testing"

	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

// decay is dx/dt = -x, with exact solution x(t) = x0·e^-t.
type decay struct{}

func (d *decay) StateDim() int { return 1 }
func (d *decay) Derive(x epi.State, _ epi.Control, _ float64) epi.State {
	return epi.State{-x[0]}
}

func TestEuler_ExponentialDecay(t *testing.T) {
	integ := NewEuler()
	sys := &decay{}

	x := epi.State{1.0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-3 {
		t.Errorf("x(1) = %v, want ~%v", x[0], expected)
	}
}

func TestRK4_ExponentialDecay(t *testing.T) {
	integ := NewRK4()
	sys := &decay{}

	x := epi.State{1.0}
	dt := 0.1
	for i := 0; i < 10; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-6 {
		t.Errorf("x(1) = %v, want ~%v", x[0], expected)
	}
}

func TestRK45_ErrorControl(t *testing.T) {
	integ := NewRK45()
	sys := &decay{}

	x, dtNext, err := integ.StepAdaptive(sys, epi.State{1.0}, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}

	expected := math.Exp(-0.1)
	if math.Abs(x[0]-expected) > 1e-8 {
		t.Errorf("x(0.1) = %v, want ~%v", x[0], expected)
	}
	if dtNext <= 0 {
		t.Errorf("suggested dt = %v, want positive", dtNext)
	}
}

func TestEuler_UnitStepMatchesDailyRecurrence(t *testing.T) {
	// Explicit Euler at dt=1 with no control is exactly the model's
	// daily update rule.
	m, err := model.New(1000, 1, 0.5, 0.1)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}

	integ := NewEuler()
	euler := m.InitialState()
	daily := m.InitialState()

	for day := 0; day < 30; day++ {
		euler = integ.Step(m, euler, nil, float64(day), 1.0)
		daily = m.DiscreteStep(daily)
	}

	for i := range euler {
		if euler[i] != daily[i] {
			t.Errorf("compartment %d: euler %v != recurrence %v", i, euler[i], daily[i])
		}
	}
}

func TestForName(t *testing.T) {
	for _, name := range Names() {
		integ, err := ForName(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if integ == nil {
			t.Errorf("%s: nil integrator", name)
		}
	}

	if _, err := ForName("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
