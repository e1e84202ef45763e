// Package viz renders replays in the terminal.
//
// Static output uses asciigraph line plots ([PlotSeries], [PlotResult]). The
// live view is a Bubble Tea program ([Model]) that steps a control loop
// through a recorded trace and draws the path, the vehicle and the look-ahead
// target on a Braille [Canvas].
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	N     - Single step while paused
//	Tab   - Cycle tunable gains
//	↑/↓   - Scale selected gain by ±5%
//	Q     - Quit
package viz
