package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kanuel/episim/internal/config"
	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/export"
	"github.com/kanuel/episim/internal/integrators"
	"github.com/kanuel/episim/internal/metrics"
	"github.com/kanuel/episim/internal/model"
	"github.com/kanuel/episim/internal/policy"
	"github.com/kanuel/episim/internal/sim"
	"github.com/kanuel/episim/internal/stats"
	"github.com/kanuel/episim/internal/storage"
	"github.com/kanuel/episim/internal/sweep"
	"github.com/kanuel/episim/internal/viz"
)

var (
	dataDir    string
	population float64
	infected   float64
	beta       float64
	gamma      float64
	days       int
	tMax       float64
	samples    int
	integrator string
	configFile string
	preset     string
	// Lockdown policy knobs
	policyName string
	lockAt     float64
	lockCut    float64
	// Sweep axis
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	// SVG output
	svgOut   string
	svgPhase bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "episim",
		Short: "SIR epidemic simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the discrete day-by-day simulation",
		RunE:  runDiscrete,
	}
	addModelFlags(runCmd)
	runCmd.Flags().IntVar(&days, "days", config.DefaultDays, "days to simulate")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the continuous-time model",
		RunE:  runContinuous,
	}
	addModelFlags(solveCmd)
	solveCmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "end time")
	solveCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample points")
	solveCmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator")
	solveCmd.Flags().StringVar(&policyName, "policy", "none", "intervention policy")
	solveCmd.Flags().Float64Var(&lockAt, "lockdown-threshold", 50, "infected count triggering lockdown")
	solveCmd.Flags().Float64Var(&lockCut, "lockdown-reduction", 0.6, "transmission cut under lockdown")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sensitivity sweep over beta or gamma",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&days, "days", config.DefaultDays, "days per run")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "beta", "parameter to vary (beta or gamma)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "range end")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "grid points")

	classroomCmd := &cobra.Command{
		Use:   "classroom",
		Short: "binomial analysis of the 20-student model",
		RunE:  runClassroom,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "S-vs-I phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive day-by-day view",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&days, "days", config.DefaultDays, "days to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run to an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "sir.svg", "output path")
	svgCmd.Flags().BoolVar(&svgPhase, "phase", false, "render the phase portrait instead of the curves")

	rootCmd.AddCommand(runCmd, solveCmd, sweepCmd, classroomCmd, listCmd,
		plotCmd, phaseCmd, liveCmd, presetsCmd, exportCSVCmd, exportJSONCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&population, "population", config.DefaultPopulation, "total population")
	cmd.Flags().Float64Var(&infected, "infected", config.DefaultInfected, "initially infected")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset scenario")
}

// resolveConfig layers preset, then config file, then explicit CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("population") {
		cfg.Population = population
	}
	if flags.Changed("infected") {
		cfg.InitialInfected = infected
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("gamma") {
		cfg.Gamma = gamma
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("tmax") {
		cfg.TMax = tMax
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("policy") {
		cfg.Policy.Name = policyName
	}
	if flags.Changed("lockdown-threshold") {
		cfg.Policy.Threshold = lockAt
	}
	if flags.Changed("lockdown-reduction") {
		cfg.Policy.Reduction = lockCut
	}

	return cfg, nil
}

func buildModel(cfg *config.Config) (*model.SIR, error) {
	return model.New(cfg.Population, cfg.InitialInfected, cfg.Beta, cfg.Gamma)
}

func buildPolicy(cfg config.PolicyConfig) (epi.Policy, error) {
	switch cfg.Name {
	case "", "none":
		return policy.NewNone(), nil
	case "lockdown":
		return policy.NewLockdown(cfg.Threshold, cfg.Reduction), nil
	default:
		return nil, fmt.Errorf("unknown policy: %s", cfg.Name)
	}
}

func newRunner(m *model.SIR) *sim.Runner {
	r := sim.New(m)
	r.AddMetric(metrics.NewConservation(m.Population()))
	r.AddMetric(metrics.NewPeak())
	r.AddMetric(metrics.NewExtinction())
	return r
}

func runDiscrete(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running discrete simulation (N=%g, I0=%g, beta=%g, gamma=%g, days=%d)...\n",
		cfg.Population, cfg.InitialInfected, cfg.Beta, cfg.Gamma, cfg.Days)
	start := time.Now()

	runner := newRunner(m)
	series, err := runner.RunDiscrete(context.Background(), cfg.Days)
	if err != nil {
		return err
	}

	return finishRun(m, cfg, "discrete", series, runner, time.Since(start))
}

func runContinuous(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	integ, err := integrators.ForName(cfg.Integrator)
	if err != nil {
		return err
	}

	pol, err := buildPolicy(cfg.Policy)
	if err != nil {
		return err
	}

	fmt.Printf("solving ODE system (N=%g, beta=%g, gamma=%g, tmax=%g, %s)...\n",
		cfg.Population, cfg.Beta, cfg.Gamma, cfg.TMax, cfg.Integrator)
	start := time.Now()

	runner := newRunner(m)
	runner.SetPolicy(pol)
	series, err := runner.RunContinuous(context.Background(), cfg.TMax, cfg.Samples, integ, epi.DefaultConfig())
	if err != nil {
		return err
	}

	return finishRun(m, cfg, "ode", series, runner, time.Since(start))
}

func finishRun(m *model.SIR, cfg *config.Config, mode string, series sim.Series, runner *sim.Runner, elapsed time.Duration) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	summaryFields := map[string]float64{}
	if m.Gamma() > 0 {
		summary, err := stats.Summarize(series, m)
		if err != nil {
			return err
		}
		summaryFields = summary.Fields()
	}

	meta := storage.RunMetadata{
		Mode:            mode,
		Population:      cfg.Population,
		InitialInfected: cfg.InitialInfected,
		Beta:            m.Beta(),
		Gamma:           m.Gamma(),
		Days:            series.Last().Day,
		Summary:         summaryFields,
	}

	runID, err := st.Save(meta, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("records: %d\n\n", len(series))

	printSummary(m, series)

	fmt.Println("\nmetrics:")
	for name, val := range runner.MetricValues() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func printSummary(m *model.SIR, series sim.Series) {
	peakDay, peakCount := stats.PeakInfection(series)
	final := stats.FinalRecovered(series)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "peak infection\tday %.0f (%.1f cases, %.1f%% of population)\n",
		peakDay, peakCount, 100*peakCount/m.Population())
	fmt.Fprintf(w, "final recovered\t%.1f (%.1f%%)\n",
		final, 100*stats.RecoveryRate(series, m.Population()))

	if r0, err := m.BasicReproduction(); err == nil {
		fmt.Fprintf(w, "R0\t%.2f\n", r0)
	} else {
		fmt.Fprintf(w, "R0\tundefined (gamma = 0)\n")
	}
	w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	req := sweep.Request{
		Population:      cfg.Population,
		InitialInfected: cfg.InitialInfected,
		Beta:            cfg.Beta,
		Gamma:           cfg.Gamma,
		Param:           sweepParam,
		From:            sweepFrom,
		To:              sweepTo,
		Points:          sweepPoints,
		Days:            cfg.Days,
	}

	points, err := sweep.Run(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Printf("sweep over %s in [%g, %g], %d days each\n\n", sweepParam, sweepFrom, sweepTo, cfg.Days)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tR0\tPEAK DAY\tPEAK\tATTACK RATE\n", sweepParam)
	peaks := make([]float64, len(points))
	for i, p := range points {
		peaks[i] = p.Summary.PeakInfected
		fmt.Fprintf(w, "%.3f\t%.2f\t%.0f\t%.1f\t%.1f%%\n",
			p.Value, p.Summary.R0, p.Summary.PeakDay, p.Summary.PeakInfected, 100*p.Summary.AttackRate)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(viz.InfectedCurve(peaks, 60, 10, fmt.Sprintf("peak infected vs %s", sweepParam)))
	return nil
}

func runClassroom(cmd *cobra.Command, args []string) error {
	c := stats.NewClassroom()

	fmt.Printf("classroom model: %d students, daily infection probability %.2f\n", c.Students, c.PInfect)
	fmt.Printf("expected daily infections: %.2f\n\n", c.Expected())

	dist := c.Distribution()
	// The tail beyond a handful of infections carries no visible mass.
	fmt.Println(viz.InfectedCurve(dist[:8], 60, 10, "P(k infections in a day), k = 0..7"))

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tP(X = K)")
	for k := 0; k <= 4; k++ {
		fmt.Fprintf(w, "%d\t%.6f\n", k, c.PMF(k))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tN\tBETA\tGAMMA\tDAYS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.3f\t%.3f\t%.0f\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Population,
			run.Beta,
			run.Gamma,
			run.Days,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, sim.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", runID)
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s, N=%g, beta=%g, gamma=%g\n\n", meta.Mode, meta.Population, meta.Beta, meta.Gamma)
	fmt.Println(viz.Curves(series, 80, 15))
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s\n\n", meta.ID)
	fmt.Println(viz.PhasePortrait(series, 70, 20))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	return viz.RunLive(m, cfg.Days)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"day", "susceptible", "infected", "recovered", "total"}); err != nil {
		return err
	}
	for _, rec := range series {
		row := []string{
			strconv.FormatFloat(rec.Day, 'f', 6, 64),
			strconv.FormatFloat(rec.Susceptible, 'f', 6, 64),
			strconv.FormatFloat(rec.Infected, 'f', 6, 64),
			strconv.FormatFloat(rec.Recovered, 'f', 6, 64),
			strconv.FormatFloat(rec.Total, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta, series)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var markup string
	if svgPhase {
		markup = export.PhaseToSVG(series, 480, 480)
	} else {
		markup = export.SeriesToSVG(series, 800, 480)
	}

	if err := export.SVGToFile(svgOut, markup); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
