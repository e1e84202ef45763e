package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waypointctl/internal/replay"
)

// DefaultPlotSeries are the series drawn by PlotResult when none are named.
var DefaultPlotSeries = []string{"throttle", "brake", "steer", "crosstrack_error"}

// PlotSeries draws one series as an asciigraph line plot. Empty series render
// as a caption only.
func PlotSeries(name string, series []float64, width, height int) string {
	if len(series) == 0 {
		return name + ": no data\n"
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(name),
		asciigraph.Precision(3),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(series, opts...) + "\n"
}

// PlotResult plots each named series of a replay result, one below the other.
func PlotResult(r *replay.Result, names []string, width, height int) (string, error) {
	if len(names) == 0 {
		names = DefaultPlotSeries
	}
	var b strings.Builder
	for _, name := range names {
		s := r.Series(name)
		if s == nil {
			return "", fmt.Errorf("unknown series: %s (available: %v)", name, replay.SeriesNames)
		}
		b.WriteString(graphStyle.Render(PlotSeries(name, s, width, height)))
		b.WriteString("\n")
	}
	return b.String(), nil
}
