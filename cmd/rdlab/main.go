package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rdlab/internal/config"
	"github.com/san-kum/rdlab/internal/diffusion"
	"github.com/san-kum/rdlab/internal/export"
	"github.com/san-kum/rdlab/internal/integrators"
	"github.com/san-kum/rdlab/internal/kinetics"
	"github.com/san-kum/rdlab/internal/metrics"
	"github.com/san-kum/rdlab/internal/rd"
	"github.com/san-kum/rdlab/internal/sim"
	"github.com/san-kum/rdlab/internal/store"
	"github.com/san-kum/rdlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	width    int
	height   int
	boundary string
	stencil  string
	kinName  string
	pattern  string
	seed     int64
	noise    float64

	du    float64
	dv    float64
	fRate float64
	kRate float64
	dt    float64

	steps   int
	perTick int
	policy  string
	noClamp bool

	species string
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdlab",
		Short: "reaction-diffusion simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rdlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 2000, "number of steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&perTick, "per-tick", 20, "simulation steps per rendered frame")

	resumeCmd := &cobra.Command{
		Use:   "resume [run_id]",
		Short: "continue a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  resumeRun,
	}
	resumeCmd.Flags().IntVar(&steps, "steps", 2000, "number of additional steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a saved run to png",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&species, "species", "v", "field to render (u or v)")
	renderCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.png)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the parameter history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and stencils",
		RunE:  benchStencils,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s f=%.3f k=%.3f\n", name, p.Params.F, p.Params.K)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, resumeCmd, listCmd, exportCmd, renderCmd, plotCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset")
	cmd.Flags().IntVar(&width, "width", config.DefaultSize, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultSize, "grid height")
	cmd.Flags().StringVar(&boundary, "boundary", "periodic", "boundary policy (periodic, reflective, fixed)")
	cmd.Flags().StringVar(&stencil, "stencil", "five-point", "laplacian stencil (five-point, nine-point)")
	cmd.Flags().StringVar(&kinName, "kinetics", "grayscott", "kinetics model")
	cmd.Flags().StringVar(&pattern, "pattern", "splatter", "seeding pattern (splatter, center, uniform)")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&noise, "noise", 0, "seeding noise amplitude")
	cmd.Flags().Float64Var(&du, "du", config.DefaultDu, "diffusion rate of u")
	cmd.Flags().Float64Var(&dv, "dv", config.DefaultDv, "diffusion rate of v")
	cmd.Flags().Float64Var(&fRate, "f", config.DefaultF, "feed rate")
	cmd.Flags().Float64Var(&kRate, "k", config.DefaultK, "kill rate")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().StringVar(&policy, "policy", "halt", "divergence policy (halt, reset)")
	cmd.Flags().BoolVar(&noClamp, "no-clamp", false, "disable output clamping")
}

// resolveConfig layers preset, config file, and changed flags, in that order
// of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if flags.Changed("stencil") {
		cfg.Stencil = stencil
	}
	if flags.Changed("kinetics") {
		cfg.Kinetics = kinName
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("noise") {
		cfg.Noise = noise
	}
	if flags.Changed("du") {
		cfg.Params.Du = du
	}
	if flags.Changed("dv") {
		cfg.Params.Dv = dv
	}
	if flags.Changed("f") {
		cfg.Params.F = fRate
	}
	if flags.Changed("k") {
		cfg.Params.K = kRate
	}
	if flags.Changed("dt") {
		cfg.Params.Dt = dt
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("per-tick") {
		cfg.PerTick = perTick
	}
	if noClamp {
		cfg.Clamp.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildController(cfg *config.Config) (*sim.Controller, sim.SeedSpec, error) {
	grid, err := cfg.Grid()
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}
	params, err := cfg.RDParams()
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}
	seedSpec, err := cfg.SeedSpec()
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}
	stencilKind, err := cfg.StencilKind()
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}
	kin, err := kinetics.New(cfg.Kinetics)
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}

	stepper := integrators.NewEuler(diffusion.NewOperator(stencilKind))
	if cfg.Clamp.Enabled {
		stepper.EnableClamp(cfg.Clamp.Lo, cfg.Clamp.Hi)
	} else {
		stepper.DisableClamp()
	}

	ctrl, err := sim.New(grid, kin, stepper, params, seedSpec)
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}

	pol, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, sim.SeedSpec{}, err
	}
	ctrl.SetPolicy(pol)

	return ctrl, seedSpec, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, _, err := buildController(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s on %dx%d (%s)...\n", cfg.Kinetics, cfg.Width, cfg.Height, cfg.Boundary)
	start := time.Now()

	runErr := ctrl.Advance(context.Background(), cfg.Steps)
	elapsed := time.Since(start)

	var derr *rd.DivergenceError
	if errors.As(runErr, &derr) {
		fmt.Printf("diverged: %v\n", derr)
	} else if runErr != nil {
		return runErr
	}

	frame := ctrl.CurrentFrame()
	sum := metrics.Summarize(frame.Step, frame.U, frame.V)

	runID, err := st.SaveRun(cfg.Kinetics, ctrl.Snapshot(), ctrl.History(), sum)
	if err != nil {
		return err
	}

	stepsDone := frame.Step
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tMIN\tMAX\tMEAN")
	fmt.Fprintf(w, "u\t%.4f\t%.4f\t%.4f\n", sum.U.Min, sum.U.Max, sum.U.Mean)
	fmt.Fprintf(w, "v\t%.4f\t%.4f\t%.4f\n", sum.V.Min, sum.V.Max, sum.V.Mean)
	if err := w.Flush(); err != nil {
		return err
	}
	if elapsed > 0 && stepsDone > 0 {
		fmt.Printf("\n%.0f steps/sec\n", float64(stepsDone)/elapsed.Seconds())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, seedSpec, err := buildController(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(ctrl, seedSpec, cfg.PerTick)
}

func resumeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	snap, err := st.LoadRunSnapshot(runID)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Width = snap.Width
	cfg.Height = snap.Height
	cfg.Boundary = snap.Boundary
	cfg.Kinetics = meta.Kinetics

	ctrl, _, err := buildController(cfg)
	if err != nil {
		return err
	}
	if err := ctrl.Restore(snap); err != nil {
		return err
	}

	fmt.Printf("resuming %s from step %d...\n", runID, snap.Step)
	start := time.Now()

	runErr := ctrl.Advance(context.Background(), steps)
	elapsed := time.Since(start)

	var derr *rd.DivergenceError
	if errors.As(runErr, &derr) {
		fmt.Printf("diverged: %v\n", derr)
	} else if runErr != nil {
		return runErr
	}

	frame := ctrl.CurrentFrame()
	sum := metrics.Summarize(frame.Step, frame.U, frame.V)

	newID, err := st.SaveRun(meta.Kinetics, ctrl.Snapshot(), ctrl.History(), sum)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s (step %d)\n", newID, frame.Step)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKINETICS\tGRID\tSTEPS\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n",
			run.ID,
			run.Kinetics,
			run.Width, run.Height,
			run.Steps,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	snap, err := st.LoadRunSnapshot(runID)
	if err != nil {
		return err
	}

	b, err := rd.ParseBoundary(snap.Boundary)
	if err != nil {
		return err
	}
	grid, err := rd.NewGrid(snap.Width, snap.Height, b)
	if err != nil {
		return err
	}

	var field rd.Field
	switch species {
	case "u":
		field = rd.Field(snap.U)
	case "v":
		field = rd.Field(snap.V)
	default:
		return fmt.Errorf("unknown species: %s", species)
	}

	path := outPath
	if path == "" {
		path = runID + ".png"
	}
	if err := export.SavePNG(path, grid, field, viz.Gradient); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	hist, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(hist) == 0 {
		fmt.Println("no parameter edits recorded")
		return nil
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("edits: %d\n\n", len(hist))

	if len(hist) < 2 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tDU\tDV\tF\tK\tDT")
		for _, rec := range hist {
			fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
				rec.Step, rec.Du, rec.Dv, rec.F, rec.K, rec.Dt)
		}
		return w.Flush()
	}

	series := []struct {
		name string
		get  func(store.HistoryRecord) float64
	}{
		{"feed rate f", func(r store.HistoryRecord) float64 { return r.F }},
		{"kill rate k", func(r store.HistoryRecord) float64 { return r.K }},
		{"diffusion du", func(r store.HistoryRecord) float64 { return r.Du }},
		{"diffusion dv", func(r store.HistoryRecord) float64 { return r.Dv }},
	}

	for _, s := range series {
		data := make([]float64, len(hist))
		for i, rec := range hist {
			data[i] = s.get(rec)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption(s.name+" over edits"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func benchStencils(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 128, 256}
	stencils := []diffusion.Stencil{diffusion.FivePoint, diffusion.NinePoint}
	const benchSteps = 200

	kin, err := kinetics.New("grayscott")
	if err != nil {
		return err
	}
	params := rd.Params{
		Du: config.DefaultDu, Dv: config.DefaultDv,
		F: config.DefaultF, K: config.DefaultK, Dt: config.DefaultDt,
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTENCIL\tSTEPS\tTIME\tMCELLS/SEC")

	for _, size := range sizes {
		grid, err := rd.NewGrid(size, size, rd.Periodic)
		if err != nil {
			return err
		}
		for _, s := range stencils {
			stepper := integrators.NewEuler(diffusion.NewOperator(s))
			stepper.EnableClamp(0, 1)

			ctrl, err := sim.New(grid, kin, stepper, params,
				sim.SeedSpec{Pattern: sim.PatternSplatter, Seed: 42})
			if err != nil {
				return err
			}

			start := time.Now()
			if err := ctrl.Advance(context.Background(), benchSteps); err != nil {
				return err
			}
			elapsed := time.Since(start)

			cells := float64(grid.Cells()) * benchSteps
			fmt.Fprintf(w, "%dx%d\t%s\t%d\t%v\t%.1f\n",
				size, size, s, benchSteps, elapsed.Round(time.Millisecond),
				cells/elapsed.Seconds()/1e6)
		}
	}
	return w.Flush()
}
