package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

// Model is what the runner drives: an ODE system for continuous mode plus
// the exact daily recurrence for discrete mode.
type Model interface {
	epi.System
	InitialState() epi.State
	DiscreteStep(x epi.State) epi.State
}

// Runner drives a model forward and produces a Series. A Runner is not
// safe for concurrent use; see Ensemble for parallel runs.
type Runner struct {
	model     Model
	policy    epi.Policy
	metrics   []epi.Metric
	observers []epi.Observer
}

func New(m Model) *Runner {
	return &Runner{model: m}
}

// SetPolicy installs an intervention policy. Policies only influence
// continuous-mode runs; the discrete recurrence stays fixed.
func (r *Runner) SetPolicy(p epi.Policy)     { r.policy = p }
func (r *Runner) AddMetric(m epi.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o epi.Observer) { r.observers = append(r.observers, o) }

// RunDiscrete applies the daily recurrence for the given number of days.
// Record 0 is the initial condition; days == 0 yields a one-record series.
// The run is deterministic: identical parameters produce a bit-identical
// series.
func (r *Runner) RunDiscrete(ctx context.Context, days int) (Series, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must be non-negative, got %d", days)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	x := r.model.InitialState()
	series := make(Series, 0, days+1)
	series = append(series, r.record(0, x))
	r.observe(x, 0)

	for day := 0; day < days; day++ {
		select {
		case <-ctx.Done():
			return series, ctx.Err()
		default:
		}

		x = r.model.DiscreteStep(x)
		t := float64(day + 1)
		series = append(series, r.record(t, x))
		r.observe(x, t)
	}

	return series, nil
}

// RunContinuous samples the ODE solution at numSamples equally spaced
// points in [0, tMax], sub-stepping adaptively between sample times when
// the integrator supports it. Non-convergence surfaces as
// epi.ErrIntegrationFailure wrapped with the failing position.
func (r *Runner) RunContinuous(ctx context.Context, tMax float64, numSamples int, integ epi.Integrator, cfg epi.Config) (Series, error) {
	if tMax <= 0 {
		return nil, fmt.Errorf("tMax must be positive, got %g", tMax)
	}
	if numSamples < 2 {
		return nil, fmt.Errorf("numSamples must be at least 2, got %d", numSamples)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	x := r.model.InitialState()
	series := make(Series, 0, numSamples)
	series = append(series, r.record(0, x))
	r.observe(x, 0)

	sampleStep := tMax / float64(numSamples-1)
	t := 0.0
	dt := math.Min(cfg.MaxDt, sampleStep)

	for n := 1; n < numSamples; n++ {
		target := float64(n) * sampleStep

		for t < target-1e-12 {
			select {
			case <-ctx.Done():
				return series, ctx.Err()
			default:
			}

			u := r.control(x, t)
			h := math.Min(dt, target-t)

			if adaptive, ok := integ.(epi.AdaptiveIntegrator); ok {
				next, dtNext, err := adaptive.StepAdaptive(r.model, x, u, t, h, cfg.Tolerance)
				if err != nil {
					return series, &epi.SimulationError{Step: n, Time: t, Wrapped: fmt.Errorf("%w: %v", epi.ErrIntegrationFailure, err)}
				}
				if dtNext < cfg.MinDt {
					return series, &epi.SimulationError{Step: n, Time: t, Wrapped: fmt.Errorf("%w: step size underflow (%e)", epi.ErrIntegrationFailure, dtNext)}
				}
				x = next
				t += h
				dt = math.Min(dtNext, cfg.MaxDt)
			} else {
				x = integ.Step(r.model, x, u, t, h)
				t += h
			}

			if cfg.ValidateState && !x.IsValid() {
				return series, &epi.SimulationError{Step: n, Time: t, Wrapped: fmt.Errorf("%w: state is NaN/Inf", epi.ErrIntegrationFailure)}
			}
		}

		t = target // pin to the grid, accumulated fp error stays out of the day column
		series = append(series, r.record(target, x))
		r.observe(x, target)
	}

	return series, nil
}

func (r *Runner) control(x epi.State, t float64) epi.Control {
	if r.policy == nil {
		return nil
	}
	return r.policy.Compute(x, t)
}

func (r *Runner) record(day float64, x epi.State) Record {
	return Record{
		Day:         day,
		Susceptible: x[model.Susceptible],
		Infected:    x[model.Infected],
		Recovered:   x[model.Recovered],
		Total:       x.Sum(),
	}
}

func (r *Runner) observe(x epi.State, t float64) {
	for _, m := range r.metrics {
		m.Observe(x, t)
	}
	for _, o := range r.observers {
		o.OnStep(x, t)
	}
}

// MetricValues snapshots the current value of every attached metric.
func (r *Runner) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
