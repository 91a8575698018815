package stats_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
	"github.com/kanuel/episim/internal/sim"
	"github.com/kanuel/episim/internal/stats"
)

var _ = Describe("Summary", func() {
	var (
		m      *model.SIR
		series sim.Series
	)

	BeforeEach(func() {
		var err error
		m, err = model.New(1000, 1, 0.5, 0.1)
		Expect(err).NotTo(HaveOccurred())

		series, err = sim.New(m).RunDiscrete(context.Background(), 75)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("PeakInfection", func() {
		It("finds a peak strictly between day 20 and day 40", func() {
			day, count := stats.PeakInfection(series)
			Expect(day).To(BeNumerically(">", 20))
			Expect(day).To(BeNumerically("<", 40))
			Expect(count).To(BeNumerically("<", 1000))
			Expect(count).To(BeNumerically(">", 0))
		})

		It("returns the first maximum on a plateau", func() {
			flat := sim.Series{
				{Day: 0, Infected: 1},
				{Day: 1, Infected: 7},
				{Day: 2, Infected: 7},
				{Day: 3, Infected: 2},
			}
			day, count := stats.PeakInfection(flat)
			Expect(day).To(Equal(1.0))
			Expect(count).To(Equal(7.0))
		})
	})

	Describe("ReproductionNumber", func() {
		It("returns beta over gamma", func() {
			r0, err := stats.ReproductionNumber(0.5, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r0).To(Equal(5.0))
		})

		It("rejects a zero recovery rate", func() {
			_, err := stats.ReproductionNumber(0.5, 0)
			Expect(err).To(MatchError(epi.ErrZeroRecoveryRate))
		})
	})

	Describe("Summarize", func() {
		It("builds a consistent digest", func() {
			summary, err := stats.Summarize(series, m)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.R0).To(Equal(5.0))
			Expect(summary.Population).To(Equal(1000.0))
			Expect(summary.FinalRecovered).To(Equal(series.Last().Recovered))
			Expect(summary.AttackRate).To(Equal(summary.FinalRecovered / 1000))
			Expect(summary.PeakShare).To(Equal(summary.PeakInfected / 1000))
			// R0 = 5 epidemics infect nearly everyone.
			Expect(summary.AttackRate).To(BeNumerically(">", 0.9))
		})

		It("propagates the degenerate gamma error", func() {
			degenerate, err := model.New(1000, 1, 0.5, 0)
			Expect(err).NotTo(HaveOccurred())

			_, err = stats.Summarize(series, degenerate)
			Expect(err).To(MatchError(epi.ErrZeroRecoveryRate))
		})

		It("flattens into store fields", func() {
			summary, err := stats.Summarize(series, m)
			Expect(err).NotTo(HaveOccurred())

			fields := summary.Fields()
			Expect(fields).To(HaveKeyWithValue("r0", 5.0))
			Expect(fields).To(HaveKey("peak_day"))
			Expect(fields).To(HaveKey("attack_rate"))
		})
	})

	Describe("FinalRecovered", func() {
		It("reads the last record", func() {
			Expect(stats.FinalRecovered(series)).To(Equal(series[len(series)-1].Recovered))
		})

		It("is zero for an empty series", func() {
			Expect(stats.FinalRecovered(nil)).To(Equal(0.0))
		})
	})
})

var _ = Describe("Classroom", func() {
	It("has the reference configuration", func() {
		c := stats.NewClassroom()
		Expect(c.Students).To(Equal(20))
		Expect(c.PInfect).To(Equal(0.02))
		Expect(c.Expected()).To(BeNumerically("~", 0.4, 1e-12))
	})

	It("produces a normalized PMF", func() {
		c := stats.NewClassroom()
		total := 0.0
		for _, p := range c.Distribution() {
			Expect(p).To(BeNumerically(">=", 0))
			total += p
		}
		Expect(total).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("matches the analytic zero-infection probability", func() {
		c := stats.NewClassroom()
		// (1-p)^n
		want := 1.0
		for i := 0; i < 20; i++ {
			want *= 0.98
		}
		Expect(c.PMF(0)).To(BeNumerically("~", want, 1e-9))
	})

	It("is zero outside the support", func() {
		c := stats.NewClassroom()
		Expect(c.PMF(-1)).To(Equal(0.0))
		Expect(c.PMF(21)).To(Equal(0.0))
	})
})
