package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/snapshot"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	gconst     float64
	epsilon    float64
	steps      int
	interval   int
	numBodies  int
	seed       int64
	configFile string
	preset     string
	// playback
	frameRate int
	// analysis
	bodyName string
	axis     int
	// export
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "gravitational N-body simulation with collision merging",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().Float64Var(&gconst, "g", config.DefaultG, "gravitational constant")
	runCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "softening distance")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "total steps")
	runCmd.Flags().IntVar(&interval, "snapshot-interval", config.DefaultSnapshotInterval, "steps between snapshots")
	runCmd.Flags().IntVar(&numBodies, "bodies", 0, "number of bodies (cluster)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (cluster)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body count and total mass over a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate a body's dominant orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "", "body name to analyze")
	analyzeCmd.Flags().IntVar(&axis, "axis", 0, "position axis (0=x 1=y 2=z)")

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "replay a stored run as an animated 3D view",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}
	playCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, playCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(scenarioName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
		cfg = p
	}

	cfg.Scenario = scenarioName

	// explicit flags override file and preset values
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gconst
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("snapshot-interval") {
		cfg.SnapshotInterval = interval
	}
	if cmd.Flags().Changed("bodies") {
		cfg.Cluster.Bodies = numBodies
	}
	if cmd.Flags().Changed("seed") {
		cfg.Cluster.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	store := snapshot.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	writer, err := store.NewRun(cfg.Scenario, cfg.SimConfig(), len(reg))
	if err != nil {
		return err
	}

	driver, err := sim.New(cfg.SimConfig())
	if err != nil {
		return err
	}
	driver.SetWriter(writer)
	driver.AddMetric(metrics.NewEnergyDrift(gravity.New(cfg.G, cfg.Epsilon)))
	driver.AddMetric(metrics.NewMomentumDrift())
	driver.AddMetric(metrics.NewMergeCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("%s %s (%d bodies, %d steps, dt=%g)\n",
		viz.HeaderLine.Render("running"), cfg.Scenario, len(reg), cfg.Steps, cfg.Dt)

	result, runErr := driver.Run(ctx, reg)
	if closeErr := writer.Close(result); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("%s %s\n", viz.HeaderLine.Render("saved"), writer.ID())
	fmt.Printf("  steps:   %d", result.StepsTaken)
	if result.HaltedEarly {
		fmt.Print(" (halted early: single body left)")
	}
	fmt.Println()
	fmt.Printf("  merges:  %d\n", len(result.Merges))
	for _, e := range result.Merges {
		fmt.Println(viz.Subtle.Render(fmt.Sprintf("    step %d: %s + %s -> %s", e.Step, e.A, e.B, e.Name)))
	}
	fmt.Printf("  bodies:  %d -> %d\n", len(result.Final)+len(result.Merges), len(result.Final))
	for name, value := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, value)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := snapshot.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSTEPS\tBODIES\tMERGES\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d->%d\t%d\t%s\n",
			r.ID, r.Scenario, r.StepsTaken, r.InitialBodies, r.FinalBodies,
			r.Merges, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := snapshot.New(dataDir)
	frames, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	fmt.Println(viz.HeaderLine.Render("body count"))
	fmt.Println(viz.RenderPlot(viz.CountSeries(frames), "frames"))
	fmt.Println()
	fmt.Println(viz.HeaderLine.Render("total mass"))
	fmt.Println(viz.RenderPlot(viz.MassSeries(frames), "frames"))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := snapshot.New(dataDir)

	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	name := bodyName
	if name == "" {
		name = frames[0].Bodies[0].Name
	}
	if axis < 0 || axis > 2 {
		return fmt.Errorf("axis must be 0, 1, or 2")
	}

	series := viz.CoordinateSeries(frames, name, axis)
	if len(series) == 0 {
		return fmt.Errorf("body %q not found in run %s", name, args[0])
	}

	sampleInterval := meta.Dt * float64(meta.SnapshotInterval)
	period := analysis.DominantPeriod(series, sampleInterval)

	fmt.Printf("%s %s axis %d (%d samples)\n", viz.HeaderLine.Render("analyze"), name, axis, len(series))
	fmt.Println(viz.RenderPlot(series, "position"))
	if period == 0 {
		fmt.Println("no dominant period detected")
	} else {
		fmt.Printf("dominant period: %.6g s (%.4g days)\n", period, period/86400)
	}
	return nil
}

func playRun(cmd *cobra.Command, args []string) error {
	store := snapshot.New(dataDir)
	frames, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}
	return viz.Run(args[0], frames, frameRate)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := snapshot.New(dataDir)
	if outFile != "" {
		return store.ExportJSONFile(outFile, args[0])
	}
	return store.ExportJSON(os.Stdout, args[0])
}
