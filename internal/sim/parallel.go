package sim

import (
	"context"
	"sync"
)

// Variation is one member of an ensemble: a named model to run with the
// shared step count.
type Variation struct {
	Name  string
	Model Model
}

// Ensemble runs independent model variations concurrently. Each variation
// gets its own Runner, so no state is shared between goroutines; results
// are collected after all runs complete.
type Ensemble struct {
	variations []Variation
}

func NewEnsemble(variations []Variation) *Ensemble {
	return &Ensemble{variations: variations}
}

// RunDiscrete runs every variation for the given number of days and
// returns the series in variation order. The first error wins.
func (e *Ensemble) RunDiscrete(ctx context.Context, days int) ([]Series, error) {
	results := make([]Series, len(e.variations))
	errs := make([]error, len(e.variations))

	var wg sync.WaitGroup
	for i, v := range e.variations {
		wg.Add(1)
		go func(idx int, m Model) {
			defer wg.Done()
			results[idx], errs[idx] = New(m).RunDiscrete(ctx, days)
		}(i, v.Model)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
