package viz

import (
	"math"
	"strings"

	"github.com/san-kum/waypointctl/internal/path"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille grid addressed in world coordinates once Fit has been
// called. Each cell holds 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	minX, minY float64
	scale      float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		scale:  1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Fit sets the world-to-pixel mapping so the whole path is visible, keeping
// the aspect ratio.
func (c *Canvas) Fit(p path.Path) {
	if p.Empty() {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, w := range p.Waypoints() {
		minX, maxX = math.Min(minX, w.X), math.Max(maxX, w.X)
		minY, maxY = math.Min(minY, w.Y), math.Max(maxY, w.Y)
	}
	pw, ph := float64(c.Width*2-1), float64(c.Height*4-1)
	spanX, spanY := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if spanX > 0 {
		scale = pw / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, ph/spanY)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	c.minX, c.minY, c.scale = minX, minY, scale
}

// Project maps world coordinates to sub-pixels. World y grows upward.
func (c *Canvas) Project(x, y float64) (int, int) {
	px := (x - c.minX) * c.scale
	py := float64(c.Height*4-1) - (y-c.minY)*c.scale
	return int(math.Round(px)), int(math.Round(py))
}

// Set lights the sub-pixel (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot lights the sub-pixel under a world point.
func (c *Canvas) Plot(x, y float64) {
	c.Set(c.Project(x, y))
}

// Cross draws a small marker centred on a world point.
func (c *Canvas) Cross(x, y float64) {
	px, py := c.Project(x, y)
	for d := -1; d <= 1; d++ {
		c.Set(px+d, py)
		c.Set(px, py+d)
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPath connects consecutive waypoints.
func (c *Canvas) DrawPath(p path.Path) {
	wps := p.Waypoints()
	for i := 1; i < len(wps); i++ {
		x0, y0 := c.Project(wps[i-1].X, wps[i-1].Y)
		x1, y1 := c.Project(wps[i].X, wps[i].Y)
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
