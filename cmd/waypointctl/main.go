package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/waypointctl/internal/config"
	"github.com/san-kum/waypointctl/internal/replay"
	"github.com/san-kum/waypointctl/internal/viz"
)

var (
	pathFile      string
	traceFile     string
	configFile    string
	preset        string
	kp            float64
	ki            float64
	kd            float64
	lookAhead     int
	integralLimit float64
	zeroSpeed     string
	stopOnError   bool
	frameRate     int
	plotWidth     int
	plotHeight    int
	series        []string
	writeFile     string
	format        string
	presetNames   []string
)

// main registers the commands and exits with status 1 on any command error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "waypointctl",
		Short:        "waypoint-tracking vehicle controller",
		SilenceUsage: true,
	}

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "run the controller over a recorded trace and print commands as csv",
		RunE:  runReplay,
	}
	addInputFlags(replayCmd)
	addGainFlags(replayCmd)
	replayCmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot command and error series of a replay",
		RunE:  runPlot,
	}
	addInputFlags(plotCmd)
	addGainFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().StringSliceVar(&series, "series", nil,
		fmt.Sprintf("series to plot, any of %s (default %s)",
			strings.Join(replay.SeriesNames, ","), strings.Join(viz.DefaultPlotSeries, ",")))

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step through a trace with live visualization",
		RunE:  runLive,
	}
	addInputFlags(liveCmd)
	addGainFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if writeFile != "" {
				if err := config.Save(writeFile, cfg); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "wrote %s\n", writeFile)
				return nil
			}
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
	configCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	configCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	addGainFlags(configCmd)
	configCmd.Flags().StringVar(&writeFile, "write", "", "save the configuration to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "replay a trace under several presets and compare metrics",
		RunE:  runCompare,
	}
	addInputFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&presetNames, "presets", nil, "presets to compare (default all)")

	rootCmd.AddCommand(replayCmd, plotCmd, liveCmd, compareCmd, configCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusError.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pathFile, "path", "", "waypoint file (x, y, speed per line)")
	cmd.Flags().StringVar(&traceFile, "trace", "", "vehicle state trace (csv)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("trace")
}

func addGainFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&kp, "kp", 0, "speed pid kp")
	cmd.Flags().Float64Var(&ki, "ki", 0, "speed pid ki")
	cmd.Flags().Float64Var(&kd, "kd", 0, "speed pid kd")
	cmd.Flags().IntVar(&lookAhead, "lookahead", 0, "look-ahead offset in waypoints")
	cmd.Flags().Float64Var(&integralLimit, "integral-limit", 0, "clamp on the speed integral (0 = unbounded)")
	cmd.Flags().StringVar(&zeroSpeed, "zero-speed", "", "zero-speed policy: neutral or error")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop the replay at the first failed cycle")
}
