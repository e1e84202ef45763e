// Package control implements the per-cycle waypoint tracking law.
//
// A [Loop] is driven once per control tick by an external vehicle interface:
//
//   - [SpeedController]: PID on speed error, mapped onto throttle or brake
//   - [SteeringController]: path heading error plus a speed-scaled cross-track
//     term, bounded to the physical steering lock
//   - [Loop]: owns the [ControllerState] carried between cycles and the
//     warm-up latch ([PhaseWarmup] → [PhaseActive])
//
// # Usage
//
//	loop, _ := control.New(control.DefaultGains())
//	_ = loop.SetPath(p)
//	for s := range feedback {
//		cmd, err := loop.Step(s) // Observe + Compute
//		...
//	}
//
// The integral term accumulates once per active Compute, so callers must
// invoke the loop exactly once per logical tick. A Loop is not safe for
// concurrent use.
package control
