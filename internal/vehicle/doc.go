// Package vehicle defines the values exchanged between a vehicle interface
// and the waypoint controller once per control cycle.
//
//   - [State]: pose, speed, timestamp and frame index reported by the simulator
//   - [Command]: normalized throttle, brake and steer sent back
//
// Neither type is retained by the controller between cycles; callers build a
// fresh [State] every tick.
package vehicle
