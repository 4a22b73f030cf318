package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/roberte777/miniphys/internal/analysis"
	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/config"
	"github.com/roberte777/miniphys/internal/experiment"
	"github.com/roberte777/miniphys/internal/export"
	"github.com/roberte777/miniphys/internal/geom"
	"github.com/roberte777/miniphys/internal/sim"
	"github.com/roberte777/miniphys/internal/storage"
	"github.com/roberte777/miniphys/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	// cloth
	meshWidth  int
	meshHeight int
	spacing    float64
	gravity    float64
	damping    float64
	iterations int
	// pendulum
	length   float64
	angleDeg float64
	// projectile
	vx float64
	vy float64
	// spring
	frequency    float64
	dampingRatio float64
	target       float64
	// plot axes
	xAxis int
	yAxis int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "miniphys",
		Short: "small physical simulators: cloth, pendulum, projectile, spring",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the live cloth view when no command given.
			if err := runLive(cmd, []string{"cloth"}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".miniphys", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored state series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of two state variables",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored trajectory, or a simulated cloth mesh, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	addModelFlags(exportSVGCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark a model across step sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	addModelFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().IntVar(&meshWidth, "width", 30, "cloth particles per row")
	cmd.Flags().IntVar(&meshHeight, "height", 20, "cloth particles per column")
	cmd.Flags().Float64Var(&spacing, "spacing", 5.0, "cloth rest spacing")
	cmd.Flags().Float64Var(&gravity, "gravity", 987.0, "cloth gravity")
	cmd.Flags().Float64Var(&damping, "damping", 0.99, "cloth velocity damping")
	cmd.Flags().IntVar(&iterations, "iterations", 2, "cloth relaxation iterations")
	cmd.Flags().Float64Var(&length, "length", 1.0, "pendulum length")
	cmd.Flags().Float64Var(&angleDeg, "angle", 30.0, "pendulum initial angle (degrees)")
	cmd.Flags().Float64Var(&vx, "vx", 10.0, "projectile initial x velocity")
	cmd.Flags().Float64Var(&vy, "vy", 20.0, "projectile initial y velocity")
	cmd.Flags().Float64Var(&frequency, "frequency", 6.0, "spring angular frequency")
	cmd.Flags().Float64Var(&dampingRatio, "damping-ratio", 0.5, "spring damping ratio")
	cmd.Flags().Float64Var(&target, "target", 1.0, "spring target position")
}

// buildConfig layers preset, config file, and explicitly set flags over the
// defaults. Flags win over the file, the file wins over the preset.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		// copy so flag overrides below don't mutate the shared preset
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Model = model
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("width") {
		cfg.Cloth.Width = meshWidth
	}
	if flags.Changed("height") {
		cfg.Cloth.Height = meshHeight
	}
	if flags.Changed("spacing") {
		cfg.Cloth.Spacing = spacing
	}
	if flags.Changed("gravity") {
		cfg.Cloth.Gravity = gravity
	}
	if flags.Changed("damping") {
		cfg.Cloth.Damping = damping
	}
	if flags.Changed("iterations") {
		cfg.Cloth.Iterations = iterations
	}
	if flags.Changed("length") {
		cfg.Pendulum.Length = length
	}
	if flags.Changed("angle") {
		cfg.Pendulum.AngleDeg = angleDeg
	}
	if flags.Changed("vx") {
		cfg.Projectile.VX = vx
	}
	if flags.Changed("vy") {
		cfg.Projectile.VY = vy
	}
	if flags.Changed("frequency") {
		cfg.Spring.Frequency = frequency
	}
	if flags.Changed("damping-ratio") {
		cfg.Spring.DampingRatio = dampingRatio
	}
	if flags.Changed("target") {
		cfg.Spring.Target = target
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	build := func() (sim.System, error) {
		return registry.Build(cfg)
	}

	m, err := viz.NewModel(build, cfg.Model, secsToDuration(cfg.Dt))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		caption := stateCaption(meta.Model, varIdx)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func stateCaption(model string, idx int) string {
	switch model {
	case "pendulum":
		if idx == 0 {
			return "theta (angle)"
		}
		return "omega (angular velocity)"
	case "projectile":
		captions := []string{"x position", "y position", "x velocity", "y velocity"}
		if idx < len(captions) {
			return captions[idx]
		}
	case "spring":
		if idx == 0 {
			return "position"
		}
		return "velocity"
	}
	return fmt.Sprintf("x%d vs time", idx)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	xMin, xMax := states[0][xAxis], states[0][xAxis]
	yMin, yMax := states[0][yAxis], states[0][yAxis]
	for i := range states {
		xData[i] = states[i][xAxis]
		yData[i] = states[i][yAxis]
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}
	xRange, yRange := xMax-xMin, yMax-yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	canvas := viz.NewCanvas(70, 20)
	pw, ph := canvas.PixelWidth(), canvas.PixelHeight()
	for i := range xData {
		px := int(float64(pw-1) * (xData[i] - xMin) / xRange)
		py := ph - 1 - int(float64(ph-1)*(yData[i]-yMin)/yRange)
		canvas.Set(px, py)
	}
	fmt.Print(canvas.String())
	fmt.Printf("\nx: [%.3f, %.3f]  y: [%.3f, %.3f]\n", xMin, xMax, yMin, yMax)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 || len(states[0]) <= xAxis {
		return fmt.Errorf("no data for state index %d", xAxis)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][xAxis]
	}

	ps := analysis.PowerSpectrum(analysis.Pad(data))
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (x%d)", xAxis)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, states, times)
}

// exportSVG renders a stored run's (x-axis, y-axis) trajectory, or with no
// run id simulates the configured cloth and emits its final wireframe.
func exportSVG(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cfg, err := buildConfig(cmd, "cloth")
		if err != nil {
			return err
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return err
		}
		if _, err := exp.Run(context.Background()); err != nil {
			return err
		}
		mesh, ok := exp.System().(*cloth.Mesh)
		if !ok {
			return fmt.Errorf("svg snapshot requires a cloth model")
		}
		fmt.Println(export.MeshToSVG(mesh, 800, 600))
		return nil
	}

	st := storage.New(dataDir)
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	points := make([]geom.Vec2, len(states))
	for i := range states {
		points[i] = geom.V(states[i][xAxis], states[i][yAxis])
	}
	fmt.Println(export.TrajectoryToSVG(points, 800, 600, "#00ff00"))
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1.0 / 240.0, 1.0 / 60.0, 1.0 / 30.0}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepDt := range dts {
			cfg, err := buildConfig(cmd, model)
			if err != nil {
				return err
			}
			cfg.Dt = stepDt
			cfg.Duration = dur

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, stepDt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func secsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
