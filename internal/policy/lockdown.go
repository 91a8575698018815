package policy

import (
	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

// Lockdown cuts the transmission rate by Reduction whenever the infected
// compartment is at or above Threshold. Hysteresis is deliberately absent:
// the policy re-evaluates every step, so contact restrictions lift as soon
// as infections fall back under the threshold.
type Lockdown struct {
	Threshold float64
	Reduction float64
}

func NewLockdown(threshold, reduction float64) *Lockdown {
	if reduction < 0 {
		reduction = 0
	}
	if reduction > 1 {
		reduction = 1
	}
	return &Lockdown{Threshold: threshold, Reduction: reduction}
}

func (l *Lockdown) Compute(x epi.State, _ float64) epi.Control {
	if x[model.Infected] >= l.Threshold {
		return epi.Control{l.Reduction}
	}
	return epi.Control{0}
}
