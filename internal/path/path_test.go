package path

import (
	"errors"
	"math"
	"testing"
)

func straight(n int, speed float64) Path {
	wps := make([]Waypoint, n)
	for i := range wps {
		wps[i] = Waypoint{X: float64(i), Y: 0, Speed: speed}
	}
	p, err := New(wps)
	if err != nil {
		panic(err)
	}
	return p
}

func TestNewRejectsShortPaths(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, err := New(make([]Waypoint, n))
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("len %d: expected ErrInvalidPath, got %v", n, err)
		}
		var ipe *InvalidPathError
		if !errors.As(err, &ipe) || ipe.Len != n {
			t.Errorf("len %d: expected *InvalidPathError with Len %d, got %v", n, n, err)
		}
	}
}

func TestNewRejectsNonFinite(t *testing.T) {
	_, err := New([]Waypoint{{0, 0, 5}, {math.NaN(), 0, 5}})
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestNewCopiesInput(t *testing.T) {
	wps := []Waypoint{{0, 0, 5}, {10, 0, 5}}
	p, err := New(wps)
	if err != nil {
		t.Fatal(err)
	}
	wps[0].X = 99
	if p.At(0).X != 0 {
		t.Error("path should not alias caller slice")
	}
}

func TestNearest(t *testing.T) {
	p, _ := FromRows([][3]float64{{0, 0, 5}, {10, 0, 6}, {20, 0, 7}})

	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"on first", 0, 0, 0},
		{"near second", 9, 1, 1},
		{"past end", 50, 0, 2},
		{"tie between 0 and 1 picks lowest", 5, 0, 0},
		{"tie between 1 and 2 picks lowest", 15, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Nearest(tt.x, tt.y); got != tt.want {
				t.Errorf("Nearest(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNearestDuplicateWaypoints(t *testing.T) {
	p, _ := FromRows([][3]float64{{3, 3, 1}, {1, 1, 2}, {1, 1, 3}, {1, 1, 4}})
	if got := p.Nearest(1, 1); got != 1 {
		t.Errorf("expected first of duplicate waypoints (1), got %d", got)
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	wps := make([]Waypoint, 0, 64)
	for i := 0; i < 64; i++ {
		a := float64(i) * 0.3
		wps = append(wps, Waypoint{X: 10 * math.Cos(a), Y: 10 * math.Sin(a), Speed: 1})
	}
	p, _ := New(wps)

	for gx := -12.0; gx <= 12; gx += 1.5 {
		for gy := -12.0; gy <= 12; gy += 1.5 {
			want, best := 0, math.Inf(1)
			for i, wp := range wps {
				d := math.Hypot(wp.X-gx, wp.Y-gy)
				if d < best {
					best, want = d, i
				}
			}
			if got := p.Nearest(gx, gy); got != want {
				t.Fatalf("(%v, %v): got %d, want %d", gx, gy, got, want)
			}
		}
	}
}

func TestLookAhead(t *testing.T) {
	for _, n := range []int{2, 3, 17, 18, 19, 20, 40} {
		p := straight(n, 1)
		for idx := 0; idx < n; idx++ {
			want := n - 1
			if idx < n-18 {
				want = idx + 17
			}
			if got := p.LookAhead(idx, DefaultLookAhead); got != want {
				t.Errorf("len %d idx %d: got %d, want %d", n, idx, got, want)
			}
		}
	}
}

func TestDesiredSpeed(t *testing.T) {
	p, _ := FromRows([][3]float64{{0, 0, 5}, {10, 0, 6}, {20, 0, 7}})

	if got, idx := p.DesiredSpeed(1, 0); got != 5 || idx != 0 {
		t.Errorf("expected (5, 0), got (%f, %d)", got, idx)
	}
	if got, idx := p.DesiredSpeed(100, 0); got != 7 || idx != 2 {
		t.Errorf("expected last waypoint (7, 2), got (%f, %d)", got, idx)
	}
	if got := p.SpeedAt(10); got != 7 {
		t.Errorf("out of range index should read last waypoint, got %f", got)
	}
	if got := p.SpeedAt(-1); got != 5 {
		t.Errorf("negative index should read first waypoint, got %f", got)
	}
	if got, idx := (Path{}).DesiredSpeed(0, 0); got != 0 || idx != -1 {
		t.Errorf("empty path: expected (0, -1), got (%f, %d)", got, idx)
	}
}

func TestNearestOverflowingDistance(t *testing.T) {
	p, _ := FromRows([][3]float64{{-1e308, 0, 5}, {-1e308, 10, 5}})

	for _, x := range []float64{1e308, -1e308} {
		if got := p.Nearest(x, 1e308); got < 0 || got >= p.Len() {
			t.Errorf("Nearest(%g, 1e308) = %d, want a valid index", x, got)
		}
	}
	if got := p.Nearest(1e308, 0); got != 0 {
		t.Errorf("all distances +Inf should pick the first waypoint, got %d", got)
	}
	if got := (Path{}).Nearest(0, 0); got != -1 {
		t.Errorf("empty path should return -1, got %d", got)
	}
}

func TestHeading(t *testing.T) {
	p, _ := FromRows([][3]float64{{0, 0, 1}, {0, 5, 1}, {0, 5, 1}})

	if got := p.Heading(0, 1); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("expected pi/2, got %f", got)
	}
	if got := p.Heading(1, 2); got != 0 {
		t.Errorf("coincident waypoints should give 0, got %f", got)
	}
}

func TestLength(t *testing.T) {
	p, _ := FromRows([][3]float64{{0, 0, 1}, {3, 4, 1}, {3, 10, 1}})
	if got := p.Length(); math.Abs(got-11) > 1e-12 {
		t.Errorf("expected length 11, got %f", got)
	}
}
