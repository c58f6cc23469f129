package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/collisim/internal/automation"
	"github.com/san-kum/collisim/internal/compute"
	"github.com/san-kum/collisim/internal/config"
	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/experiment"
	"github.com/san-kum/collisim/internal/export"
	"github.com/san-kum/collisim/internal/gui"
	"github.com/san-kum/collisim/internal/optim"
	"github.com/san-kum/collisim/internal/sim"
	"github.com/san-kum/collisim/internal/store"
	"github.com/san-kum/collisim/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string

	particles int
	workers   int
	seed      int64
	frames    int
	dt        float64
	backend   string
	metricSet []string

	guiFPS  int
	liveFPS int
	theme   string

	benchFrames int

	jsonOut bool
	plot    bool
	samples bool
	runs    int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	grid       []string
	tuneMetric string

	series bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "collisim",
	})
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "collisim",
		Short:         "parallel 2D particle collision simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	addWorldFlags(rootCmd)
	rootCmd.Flags().IntVar(&guiFPS, "fps", 60, "target frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		RunE:  runGUI,
	}
	addWorldFlags(guiCmd)
	guiCmd.Flags().IntVar(&guiFPS, "fps", 60, "target frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "target frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "cyan", "color theme (cyan, ember, mono)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		RunE:  runHeadless,
	}
	addWorldFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write a JSON report to stdout")
	runCmd.Flags().BoolVar(&samples, "samples", false, "include per-frame samples in the JSON report")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot kinetic energy")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frames per second per worker count",
		RunE:  runBench,
	}
	addWorldFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 200, "frames per measurement")
	benchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")

	partitionCmd := &cobra.Command{
		Use:   "partition [particles] [workers]",
		Short: "print the ranges particles are split into",
		Args:  cobra.ExactArgs(2),
		RunE:  printPartition,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted input scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addWorldFlags(scenarioCmd)
	scenarioCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "default timestep")
	scenarioCmd.Flags().StringVar(&backend, "backend", "auto", "backend (auto, serial, cpu)")
	scenarioCmd.Flags().StringSliceVar(&metricSet, "metrics", nil, "metrics to record (default all)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report metrics",
		RunE:  runSweep,
	}
	addWorldFlags(sweepCmd)
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "elasticity", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters minimizing a metric",
		RunE:  runTune,
	}
	addWorldFlags(tuneCmd)
	addRunFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values, e.g. damping=0.5,0.75,1")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "overlaps", "metric to minimize")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write an SVG to stdout",
		RunE:  runSnapshot,
	}
	addWorldFlags(snapshotCmd)
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().BoolVar(&series, "series", false, "plot kinetic energy over time instead of particles")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, benchCmd, partitionCmd, presetsCmd,
		scenarioCmd, sweepCmd, tuneCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = all CPUs)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().StringVar(&backend, "backend", "auto", "backend (auto, serial, cpu)")
	cmd.Flags().StringSliceVar(&metricSet, "metrics", nil, "metrics to record (default all)")
}

// configLayers are the user's layers: preset, config file, then the flags
// that were set explicitly.
func configLayers(cmd *cobra.Command) []config.Layer {
	flags := cmd.Flags()
	fromFlags := func(cfg *config.Config) error {
		if flags.Changed("particles") {
			cfg.Particles = particles
		}
		if flags.Changed("workers") {
			cfg.Workers = workers
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("frames") {
			cfg.Run.Frames = frames
		}
		if flags.Changed("dt") {
			cfg.Run.Dt = dt
		}
		return nil
	}
	return []config.Layer{config.WithPreset(preset), config.WithFile(configFile), fromFlags}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Resolve(configLayers(cmd)...)
}

func newWorld(cmd *cobra.Command) (*sim.World, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	world, err := sim.New(cfg.Params(), cfg.Options(), compute.New(cfg.Workers))
	if err != nil {
		return nil, err
	}
	logger.Info("world ready",
		"particles", world.Set.Len(),
		"backend", world.Backend().Name(),
		"seed", cfg.Seed,
	)
	return world, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	world, err := newWorld(cmd)
	if err != nil {
		return err
	}
	return gui.Run(world, logger, guiFPS)
}

func runLive(cmd *cobra.Command, args []string) error {
	world, err := newWorld(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	return viz.Run(world, logger, liveFPS)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	registry := experiment.NewRegistry()
	if _, err := registry.GetMetrics(metricSet, cfg.Radius); err != nil {
		return err
	}

	var (
		results     []*sim.Result
		backendName string
	)
	if runs > 1 {
		logger.Info("running ensemble", "runs", runs, "particles", cfg.Particles, "frames", cfg.Run.Frames)
		newMetrics := func() []dynamo.Metric {
			ms, _ := registry.GetMetrics(metricSet, cfg.Radius)
			return ms
		}
		ens := sim.NewEnsemble(cfg.Params(), cfg.Options(), runs, cfg.Workers, newMetrics)
		results, err = ens.Run(ctx, cfg.Run.Frames, cfg.Run.Dt)
		if err != nil {
			return err
		}
		backendName = compute.New(cfg.Workers).Name()
	} else {
		exp := experiment.New(experiment.Config{
			Sim:     cfg,
			Backend: backend,
			Workers: cfg.Workers,
			Metrics: metricSet,
		})
		if err := exp.Setup(registry); err != nil {
			return err
		}
		backendName = exp.World().Backend().Name()
		logger.Info("running", "backend", backendName, "particles", cfg.Particles, "frames", cfg.Run.Frames)

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		results = []*sim.Result{result}
	}

	if jsonOut {
		reports := make([]store.Report, len(results))
		for i, r := range results {
			reports[i] = store.NewReport(backendName, cfg.Workers, cfg.Particles, cfg.Seed+int64(i), cfg.Run.Dt, r, samples)
		}
		return store.ExportJSON(os.Stdout, reports...)
	}

	for i, r := range results {
		if len(results) > 1 {
			fmt.Printf("\nrun %d (seed %d)\n", i, cfg.Seed+int64(i))
		}
		printResult(backendName, r)
	}

	if plot {
		data := results[0].Samples["kinetic_energy"]
		if len(data) > 1 {
			graph := asciigraph.Plot(downsample(data, 80),
				asciigraph.Height(12),
				asciigraph.Caption("kinetic energy"),
			)
			fmt.Println()
			fmt.Println(graph)
		}
	}
	return nil
}

func printResult(backendName string, r *sim.Result) {
	fps := 0.0
	if secs := r.Elapsed.Seconds(); secs > 0 {
		fps = float64(r.Frames) / secs
	}
	contacts := 0
	for _, c := range r.Contacts {
		contacts += c
	}
	meanContacts := 0.0
	if len(r.Contacts) > 0 {
		meanContacts = float64(contacts) / float64(len(r.Contacts))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "backend\t%s\n", backendName)
	fmt.Fprintf(w, "frames\t%d\n", r.Frames)
	fmt.Fprintf(w, "sim time\t%.3fs\n", r.Time)
	fmt.Fprintf(w, "wall time\t%v\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "frames/sec\t%.0f\n", fps)
	fmt.Fprintf(w, "contacts/frame\t%.1f\n", meanContacts)

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, r.Metrics[name])
	}
	w.Flush()
}

// downsample averages data into at most n buckets.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(data) / n
		hi := (i + 1) * len(data) / n
		sum := 0.0
		for _, v := range data[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	counts := []int{1}
	for n := 2; n < runtime.NumCPU(); n *= 2 {
		counts = append(counts, n)
	}
	if runtime.NumCPU() > 1 {
		counts = append(counts, runtime.NumCPU())
	}
	if cmd.Flags().Changed("workers") {
		counts = []int{cfg.Workers}
	}

	if benchFrames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, benchFrames)
	}
	fmt.Printf("benchmarking %d particles, %d frames\n\n", cfg.Particles, benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tWORKERS\tTASKS\tTIME\tFRAMES/SEC\tSPEEDUP")

	var baseline float64
	for _, n := range counts {
		world, err := sim.New(cfg.Params(), cfg.Options(), compute.New(n))
		if err != nil {
			return err
		}
		var stats sim.FrameStats
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats, err = world.Frame(cfg.Run.Dt, sim.Input{})
			if err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		fps := float64(benchFrames) / elapsed.Seconds()
		if baseline == 0 {
			baseline = fps
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.2fx\n",
			world.Backend().Name(), world.Backend().Workers(), stats.Step.Tasks,
			elapsed.Round(time.Millisecond), fps, fps/baseline)
	}

	return w.Flush()
}

func printPartition(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("particles: %w", err)
	}
	t, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("workers: %w", err)
	}

	ranges := compute.Partition(n, t)
	if ranges == nil {
		return fmt.Errorf("%w: need particles > 0 and workers > 0", dynamo.ErrParameterBounds)
	}
	if err := compute.Verify(ranges, n); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKER\tRANGE\tLEN")
	for i, r := range ranges {
		fmt.Fprintf(w, "%d\t%v\t%d\n", i, r, r.Len())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tRADIUS\tELASTICITY\tDAMPING\tGRAVITY\tCORRECTION")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\t%v\t%s\n",
			name, c.Particles, c.Radius, c.Elasticity, c.Damping, c.Gravity.Enabled, c.Correction)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := sc.Config(configLayers(cmd)...)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(experiment.Config{Sim: cfg, Backend: backend, Workers: cfg.Workers, Metrics: metricSet})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, exp.World(), exp.Metrics(), cfg.Run.Dt, logger)
	if err != nil {
		return err
	}

	names := metricNames(exp.Metrics())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STEP\tFRAMES\tTIME\tCONTACTS\tTOUCHED\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.1f\t%d", r.Step, r.Frames, r.Time, r.Contacts, r.Touched)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func metricNames(ms []dynamo.Metric) []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Backend:   backend,
		Workers:   cfg.Workers,
		Frames:    cfg.Run.Frames,
		Dt:        cfg.Run.Dt,
		Metrics:   metricSet,
	}
	registry := experiment.NewRegistry()
	results, err := automation.RunSweep(ctx, sweep, registry, logger)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFPS\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.0f", r.ParamValue, r.FPS)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// parseGrid reads name=v1,v2,... specs.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("bad grid %q, want name=v1,v2", spec)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no --grid given")
	}
	ctx, cancel := signalContext()
	defer cancel()

	gs := optim.NewGridSearch(names, ranges)
	logger.Info("grid search", "combinations", gs.Size(), "metric", tuneMetric)

	build := func(c *config.Config) *experiment.Experiment {
		return experiment.New(experiment.Config{
			Sim:     c,
			Backend: backend,
			Workers: c.Workers,
			Metrics: []string{tuneMetric},
		})
	}
	best, trials, err := gs.Search(ctx, cfg, build, experiment.NewRegistry(), tuneMetric)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return fmt.Errorf("no valid combination")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(tuneMetric))
	for _, t := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%.4g\t", t.Params[name])
		}
		fmt.Fprintf(w, "%.4g\n", t.Value)
	}
	w.Flush()

	fmt.Printf("\nbest: %v -> %s=%.4g\n", best.Params, tuneMetric, best.Value)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(experiment.Config{
		Sim:     cfg,
		Backend: backend,
		Workers: cfg.Workers,
		Metrics: []string{"kinetic_energy"},
	})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	if series {
		_, err := fmt.Fprintln(os.Stdout, export.SeriesToSVG(result.Samples["kinetic_energy"], 800, 300, "#00c8ff"))
		return err
	}
	return export.WriteSetSVG(os.Stdout, exp.World().Set, cfg.Radius, export.SVGOptions{})
}
