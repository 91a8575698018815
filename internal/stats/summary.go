// Package stats derives summary statistics from a completed run.
package stats

import (
	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
	"github.com/kanuel/episim/internal/sim"
)

// Summary is the read-only digest of an epidemic run.
type Summary struct {
	PeakDay        float64 `json:"peak_day"`
	PeakInfected   float64 `json:"peak_infected"`
	PeakShare      float64 `json:"peak_share"`
	FinalRecovered float64 `json:"final_recovered"`
	AttackRate     float64 `json:"attack_rate"`
	R0             float64 `json:"r0"`
	Population     float64 `json:"population"`
	Beta           float64 `json:"beta"`
	Gamma          float64 `json:"gamma"`
}

// PeakInfection returns the day and size of the largest infected
// compartment. Ties resolve to the earliest day because the series is
// scanned in order.
func PeakInfection(series sim.Series) (day float64, count float64) {
	for _, rec := range series {
		if rec.Infected > count {
			day = rec.Day
			count = rec.Infected
		}
	}
	return day, count
}

// FinalRecovered returns the recovered count of the last record.
func FinalRecovered(series sim.Series) float64 {
	return series.Last().Recovered
}

// ReproductionNumber returns R0 = beta/gamma. The caller must guard the
// degenerate gamma == 0 case; it surfaces as epi.ErrZeroRecoveryRate.
func ReproductionNumber(beta, gamma float64) (float64, error) {
	if gamma == 0 {
		return 0, epi.ErrZeroRecoveryRate
	}
	return beta / gamma, nil
}

// RecoveryRate returns the fraction of the population recovered by the
// end of the run.
func RecoveryRate(series sim.Series, population float64) float64 {
	return FinalRecovered(series) / population
}

// Summarize computes the full digest for a run of the given model.
func Summarize(series sim.Series, m *model.SIR) (Summary, error) {
	r0, err := ReproductionNumber(m.Beta(), m.Gamma())
	if err != nil {
		return Summary{}, err
	}

	peakDay, peakCount := PeakInfection(series)
	n := m.Population()

	return Summary{
		PeakDay:        peakDay,
		PeakInfected:   peakCount,
		PeakShare:      peakCount / n,
		FinalRecovered: FinalRecovered(series),
		AttackRate:     RecoveryRate(series, n),
		R0:             r0,
		Population:     n,
		Beta:           m.Beta(),
		Gamma:          m.Gamma(),
	}, nil
}

// Fields flattens a Summary into the metric map shape the run store
// persists.
func (s Summary) Fields() map[string]float64 {
	return map[string]float64{
		"peak_day":        s.PeakDay,
		"peak_infected":   s.PeakInfected,
		"peak_share":      s.PeakShare,
		"final_recovered": s.FinalRecovered,
		"attack_rate":     s.AttackRate,
		"r0":              s.R0,
	}
}
