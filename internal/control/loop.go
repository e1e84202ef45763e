package control

import (
	"fmt"

	"github.com/san-kum/waypointctl/internal/path"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// Phase is the loop's warm-up latch. The only transition is
// PhaseWarmup → PhaseActive, taken on the first non-zero frame index.
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) observe(frame int) Phase {
	if p == PhaseWarmup && frame != 0 {
		return PhaseActive
	}
	return p
}

// Diagnostics exposes the internals of the most recent cycle.
type Diagnostics struct {
	Phase             Phase
	Frame             int
	Nearest           int
	LookAhead         int
	DesiredSpeed      float64
	SpeedError        float64
	Integral          float64
	Acceleration      float64
	PathHeading       float64
	HeadingError      float64
	LateralError      float64
	CrossTrackError   float64
	SteerAngle        float64
	ZeroSpeedFallback bool
	// Failed marks a cycle that returned an error; its lateral and speed
	// fields are not meaningful.
	Failed bool
}

// Loop runs the tracking law once per control cycle.
type Loop struct {
	gains   Gains
	speed   SpeedController
	steer   SteeringController
	path    path.Path
	current vehicle.State
	desired float64
	phase   Phase
	state   ControllerState
	cmd     vehicle.Command
	diag    Diagnostics
}

func New(g Gains) (*Loop, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	l := &Loop{}
	l.setGains(g)
	return l, nil
}

func (l *Loop) setGains(g Gains) {
	l.gains = g
	l.speed = NewSpeedController(g)
	l.steer = NewSteeringController(g)
}

// SetPath replaces the tracked path. It takes effect on the next Compute.
func (l *Loop) SetPath(p path.Path) error {
	if p.Len() < path.MinWaypoints {
		return &path.InvalidPathError{Len: p.Len(), Reason: "need at least 2 waypoints"}
	}
	l.path = p
	return nil
}

func (l *Loop) Path() path.Path { return l.path }

// Observe records the feedback for the coming cycle and latches the loop
// active once a non-zero frame index is seen. Invalid states are rejected
// without touching the loop.
func (l *Loop) Observe(s vehicle.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	l.current = s
	l.phase = l.phase.observe(s.Frame)
	return nil
}

// Compute runs one control cycle against the last observed state. During
// warm-up it returns the neutral command. On error it returns the neutral
// command and leaves the controller state as it was.
func (l *Loop) Compute() (vehicle.Command, error) {
	s := l.current
	if l.path.Len() < path.MinWaypoints {
		l.cmd = vehicle.Neutral()
		l.diag = Diagnostics{Phase: l.phase, Frame: s.Frame, Nearest: -1, LookAhead: -1, Failed: true}
		return l.cmd, &path.InvalidPathError{Len: l.path.Len(), Reason: "no path set"}
	}

	var idx int
	l.desired, idx = l.path.DesiredSpeed(s.X, s.Y)

	diag := Diagnostics{
		Phase:        l.phase,
		Frame:        s.Frame,
		Nearest:      idx,
		LookAhead:    l.path.LookAhead(idx, l.gains.LookAhead),
		DesiredSpeed: l.desired,
	}

	if l.phase == PhaseWarmup {
		l.cmd = vehicle.Neutral()
		l.diag = diag
		return l.cmd, nil
	}

	lat, err := l.steer.Update(l.path, diag.Nearest, diag.LookAhead, s)
	if err != nil {
		l.cmd = vehicle.Neutral()
		diag.Failed = true
		l.diag = diag
		return l.cmd, err
	}
	lon := l.speed.Update(&l.state, l.desired, s.Speed)

	l.cmd = vehicle.Command{
		Throttle: lon.Throttle,
		Brake:    lon.Brake,
		Steer:    Clamp(lat.Steer*l.gains.SteerConversion(), vehicle.MinSteer, vehicle.MaxSteer),
	}
	l.state.PrevSpeed = s.Speed
	l.state.PrevSteer = lat.Steer

	diag.SpeedError = lon.Error
	diag.Integral = lon.Integral
	diag.Acceleration = lon.Acceleration
	diag.PathHeading = lat.PathHeading
	diag.HeadingError = lat.HeadingError
	diag.LateralError = lat.LateralError
	diag.CrossTrackError = lat.CrossTrackError
	diag.SteerAngle = lat.Steer
	diag.ZeroSpeedFallback = lat.Fallback
	l.diag = diag

	return l.cmd, nil
}

// Step is Observe followed by Compute.
func (l *Loop) Step(s vehicle.State) (vehicle.Command, error) {
	if err := l.Observe(s); err != nil {
		l.cmd = vehicle.Neutral()
		l.diag = Diagnostics{Phase: l.phase, Frame: s.Frame, Nearest: -1, LookAhead: -1, Failed: true}
		return l.cmd, err
	}
	return l.Compute()
}

// Command returns the command produced by the last Compute.
func (l *Loop) Command() vehicle.Command { return l.cmd }

func (l *Loop) Diagnostics() Diagnostics { return l.diag }

func (l *Loop) Phase() Phase { return l.phase }

// State returns a copy of the cross-cycle controller memory.
func (l *Loop) State() ControllerState { return l.state }

// DesiredSpeed is the target speed read on the last Compute.
func (l *Loop) DesiredSpeed() float64 { return l.desired }

func (l *Loop) Gains() Gains { return l.gains }

// GetParams returns the gains that can be tuned while running.
func (l *Loop) GetParams() map[string]float64 {
	return map[string]float64{
		"kp":              l.gains.Kp,
		"ki":              l.gains.Ki,
		"kd":              l.gains.Kd,
		"crosstrack_gain": l.gains.CrossTrackGain,
		"max_steer":       l.gains.MaxSteer,
	}
}

// SetParam adjusts one gain. Controller memory is kept.
func (l *Loop) SetParam(name string, value float64) error {
	g := l.gains
	switch name {
	case "kp":
		g.Kp = value
	case "ki":
		g.Ki = value
	case "kd":
		g.Kd = value
	case "crosstrack_gain":
		g.CrossTrackGain = value
	case "max_steer":
		g.MaxSteer = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	l.setGains(g)
	return nil
}
