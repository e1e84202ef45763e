package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/waypointctl/internal/config"
	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/metrics"
	"github.com/san-kum/waypointctl/internal/path"
	"github.com/san-kum/waypointctl/internal/replay"
	"github.com/san-kum/waypointctl/internal/vehicle"
	"github.com/san-kum/waypointctl/internal/viz"
)

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("kp") {
		cfg.Controller.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Controller.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.Controller.Kd = kd
	}
	if flags.Changed("lookahead") {
		cfg.Controller.LookAhead = lookAhead
	}
	if flags.Changed("integral-limit") {
		cfg.Controller.IntegralLimit = integralLimit
	}
	if flags.Changed("zero-speed") {
		cfg.Controller.ZeroSpeed = zeroSpeed
	}
	if flags.Changed("stop-on-error") {
		cfg.Replay.StopOnError = stopOnError
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Replay.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type session struct {
	cfg    *config.Config
	runner *replay.Runner
	trace  []vehicle.State
}

// setup loads the inputs and builds a runner with the default metrics.
func setup(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	p, err := path.LoadFile(pathFile)
	if err != nil {
		return nil, err
	}
	trace, err := replay.LoadTrace(traceFile)
	if err != nil {
		return nil, err
	}

	loop, err := control.New(cfg.Gains())
	if err != nil {
		return nil, err
	}
	if err := loop.SetPath(p); err != nil {
		return nil, err
	}

	runner := replay.New(loop)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	return &session{cfg: cfg, runner: runner, trace: trace}, nil
}

func (s *session) run() (*replay.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.runner.Run(ctx, s.trace, replay.Config{StopOnError: s.cfg.Replay.StopOnError})
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	result, runErr := s.run()
	if result == nil {
		return runErr
	}
	switch format {
	case "json":
		err = replay.WriteJSON(os.Stdout, result)
	case "csv":
		err = replay.WriteCommands(os.Stdout, result)
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	printSummary(result)
	return runErr
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	names := presetNames
	if len(names) == 0 {
		names = config.ListPresets()
	}
	variants := make([]replay.Variant, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		variants = append(variants, replay.Variant{Name: name, Gains: cfg.Gains()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := replay.NewEnsemble(s.runner.Loop().Path(), metrics.Defaults).
		Run(ctx, s.trace, variants, replay.Config{StopOnError: s.cfg.Replay.StopOnError})
	if err != nil {
		return err
	}

	return printComparison(os.Stdout, results)
}

func printComparison(out io.Writer, results []replay.VariantResult) error {
	var cols []string
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		for k := range r.Result.Metrics {
			cols = append(cols, k)
		}
		break
	}
	sort.Strings(cols)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "PRESET\tCYCLES\tFAILED")
	for _, c := range cols {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		if r.Result == nil {
			fmt.Fprintf(w, "%s\t-\t-\t%v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d", r.Name, r.Result.Cycles, len(r.Result.Errors))
		for _, c := range cols {
			fmt.Fprintf(w, "\t%.4f", r.Result.Metrics[c])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	result, runErr := s.run()
	if result == nil {
		return runErr
	}
	out, err := viz.PlotResult(result, series, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Print(out)
	printSummary(result)
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	m := viz.NewModel(s.runner, s.trace, s.cfg.Replay.FrameRate, "waypointctl")
	return viz.Run(m)
}

// printSummary writes cycle counts and metrics to stderr so stdout stays csv.
func printSummary(r *replay.Result) {
	w := os.Stderr
	fmt.Fprintln(w)
	fmt.Fprintln(w, viz.TitleStyle.Render("replay summary"))
	fmt.Fprintln(w, viz.MetricLine("cycles", fmt.Sprintf("%d", r.Cycles)))
	status := viz.StatusRunning.Render(fmt.Sprintf("%d", len(r.Errors)))
	if len(r.Errors) > 0 {
		status = viz.StatusError.Render(fmt.Sprintf("%d", len(r.Errors)))
	}
	fmt.Fprintln(w, viz.MetricLine("failed cycles", status))

	names := make([]string, 0, len(r.Metrics))
	for k := range r.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintln(w, viz.MetricLine(k, fmt.Sprintf("%.4f", r.Metrics[k])))
	}

	st := metrics.Describe(r.Series("steer"))
	fmt.Fprintln(w, viz.MetricLine("steer min/max", fmt.Sprintf("%+.3f / %+.3f", st.Min, st.Max)))
	fmt.Fprintln(w, viz.MetricLine("steer std", fmt.Sprintf("%.4f", st.StdDev)))
	for i, e := range r.Errors {
		if i == 5 {
			fmt.Fprintf(w, "  ... %d more\n", len(r.Errors)-i)
			break
		}
		fmt.Fprintln(w, "  "+e.Error())
	}
}
