// Package replay feeds a recorded vehicle trace through a [control.Loop], one
// cycle per record, the way a simulator bridge would call it live.
//
// Replay is open loop: the recorded states are not affected by the commands
// produced, so it exercises the control law without modelling the vehicle.
//
//	loop, _ := control.New(cfg.Gains())
//	_ = loop.SetPath(p)
//	r := replay.New(loop)
//	for _, m := range metrics.Defaults() {
//		r.AddMetric(m)
//	}
//	result, err := r.Run(ctx, trace, replay.Config{})
package replay
