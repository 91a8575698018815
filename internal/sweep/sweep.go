// Package sweep runs one-dimensional sensitivity analyses: a grid of
// transmission or recovery rates, one independent discrete run per value.
package sweep

import (
	"context"
	"fmt"

	"github.com/kanuel/episim/internal/model"
	"github.com/kanuel/episim/internal/sim"
	"github.com/kanuel/episim/internal/stats"
)

// Request describes a sweep: the base parameterization plus the parameter
// axis to vary.
type Request struct {
	Population      float64
	InitialInfected float64
	Beta            float64
	Gamma           float64
	Param           string // "beta" or "gamma"
	From, To        float64
	Points          int
	Days            int
}

// Point is one sweep outcome, in grid order.
type Point struct {
	Value   float64
	Summary stats.Summary
}

func (r Request) validate() error {
	if r.Param != "beta" && r.Param != "gamma" {
		return fmt.Errorf("sweep parameter must be beta or gamma, got %q", r.Param)
	}
	if r.Points < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", r.Points)
	}
	if r.From > r.To {
		return fmt.Errorf("sweep range [%g, %g] is inverted", r.From, r.To)
	}
	return nil
}

func (r Request) modelFor(value float64) (*model.SIR, error) {
	beta, gamma := r.Beta, r.Gamma
	if r.Param == "beta" {
		beta = value
	} else {
		gamma = value
	}
	return model.New(r.Population, r.InitialInfected, beta, gamma)
}

// Run executes every grid point as an independent run. Models are built
// up front so parameter errors surface before anything starts; the runs
// themselves go through an ensemble and proceed in parallel.
func Run(ctx context.Context, req Request) ([]Point, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	step := (req.To - req.From) / float64(req.Points-1)
	values := make([]float64, req.Points)
	models := make([]*model.SIR, req.Points)
	variations := make([]sim.Variation, req.Points)

	for i := range values {
		values[i] = req.From + float64(i)*step
		m, err := req.modelFor(values[i])
		if err != nil {
			return nil, fmt.Errorf("grid point %g: %w", values[i], err)
		}
		models[i] = m
		variations[i] = sim.Variation{
			Name:  fmt.Sprintf("%s=%g", req.Param, values[i]),
			Model: m,
		}
	}

	results, err := sim.NewEnsemble(variations).RunDiscrete(ctx, req.Days)
	if err != nil {
		return nil, err
	}

	points := make([]Point, req.Points)
	for i, series := range results {
		summary, err := stats.Summarize(series, models[i])
		if err != nil {
			return nil, err
		}
		points[i] = Point{Value: values[i], Summary: summary}
	}
	return points, nil
}
