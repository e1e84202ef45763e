// Package path holds the waypoint sequence a vehicle tracks and the
// nearest-waypoint search run against it every control cycle.
package path

import (
	"math"
)

// DefaultLookAhead is the number of waypoints between the nearest waypoint and
// the one used to estimate the local path heading.
const DefaultLookAhead = 17

// MinWaypoints is the shortest path the lateral law can derive a heading from.
const MinWaypoints = 2

// Waypoint is a point on the intended path with the speed (m/s) to hold there.
type Waypoint struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Speed float64 `json:"speed" yaml:"speed"`
}

// Path is an ordered, read-only sequence of waypoints.
type Path struct {
	wps []Waypoint
}

// New copies wps into a Path after checking it is long enough and finite.
func New(wps []Waypoint) (Path, error) {
	if len(wps) < MinWaypoints {
		return Path{}, &InvalidPathError{Len: len(wps), Reason: "need at least 2 waypoints"}
	}
	for i, wp := range wps {
		if !finite(wp.X) || !finite(wp.Y) || !finite(wp.Speed) {
			return Path{}, &InvalidPathError{Len: len(wps), Index: i, Reason: "non-finite waypoint"}
		}
	}
	c := make([]Waypoint, len(wps))
	copy(c, wps)
	return Path{wps: c}, nil
}

// FromRows builds a Path from [x, y, speed] triples, the layout simulator
// bridges usually hand over.
func FromRows(rows [][3]float64) (Path, error) {
	wps := make([]Waypoint, len(rows))
	for i, r := range rows {
		wps[i] = Waypoint{X: r[0], Y: r[1], Speed: r[2]}
	}
	return New(wps)
}

func (p Path) Len() int { return len(p.wps) }

func (p Path) Empty() bool { return len(p.wps) == 0 }

func (p Path) At(i int) Waypoint { return p.wps[i] }

func (p Path) Last() Waypoint { return p.wps[len(p.wps)-1] }

// Waypoints returns a copy of the underlying sequence.
func (p Path) Waypoints() []Waypoint {
	c := make([]Waypoint, len(p.wps))
	copy(c, p.wps)
	return c
}

// Nearest returns the index of the waypoint closest to (x, y). Ties resolve to
// the lowest index, and the first waypoint wins when every distance
// overflows. An empty path returns -1.
func (p Path) Nearest(x, y float64) int {
	if len(p.wps) == 0 {
		return -1
	}
	idx := 0
	best := math.Hypot(p.wps[0].X-x, p.wps[0].Y-y)
	for i := 1; i < len(p.wps); i++ {
		d := math.Hypot(p.wps[i].X-x, p.wps[i].Y-y)
		if d < best {
			best = d
			idx = i
		}
	}
	return idx
}

// LookAhead returns idx+offset while that stays short of the final waypoint,
// otherwise the last index. With the default offset this is idx+17 when
// idx < len-18.
func (p Path) LookAhead(idx, offset int) int {
	last := len(p.wps) - 1
	if idx < last-offset {
		return idx + offset
	}
	return last
}

// DesiredSpeed is the target speed stored at the waypoint nearest to (x, y),
// returned together with that waypoint's index. An empty path gives (0, -1).
func (p Path) DesiredSpeed(x, y float64) (float64, int) {
	idx := p.Nearest(x, y)
	if idx < 0 {
		return 0, -1
	}
	return p.SpeedAt(idx), idx
}

// SpeedAt reads the target speed at idx; indices at or past the end read the
// final waypoint and negative indices the first.
func (p Path) SpeedAt(idx int) float64 {
	if idx < 0 {
		return p.wps[0].Speed
	}
	if idx < len(p.wps)-1 {
		return p.wps[idx].Speed
	}
	return p.Last().Speed
}

// Heading is the direction, in radians, from waypoint i to waypoint j.
// Coincident waypoints give 0.
func (p Path) Heading(i, j int) float64 {
	a, b := p.wps[i], p.wps[j]
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Length is the polyline length of the path in meters.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.wps); i++ {
		total += math.Hypot(p.wps[i].X-p.wps[i-1].X, p.wps[i].Y-p.wps[i-1].Y)
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
