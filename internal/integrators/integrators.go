package integrators

import (
	"fmt"

	"github.com/kanuel/episim/internal/epi"
)

// ForName resolves an integrator by its CLI/config name.
func ForName(name string) (epi.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the available integrators.
func Names() []string {
	return []string{"euler", "rk4", "rk45"}
}
