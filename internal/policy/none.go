// Package policy provides intervention policies for continuous-mode runs.
// A policy maps the current compartment state to a contact-reduction
// control; the discrete recurrence never consults one.
package policy

import "github.com/kanuel/episim/internal/epi"

// None applies no intervention.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(_ epi.State, _ float64) epi.Control {
	return nil
}
