package pizza

import (
	"math"
	"time"

	"github.com/vovakirdan/pizza-time/internal/core"
)

// Point is a position in playfield units.
type Point struct {
	X, Y float64
}

// zigzagRows are the Y coordinates of the nine waypoints, from just above
// the playfield to its bottom edge.
var zigzagRows = [...]float64{-100, 128, 256, 384, 512, 640, 768, 896, 1024}

// Path is a polyline traversed at constant speed. Waypoints are the
// top-left corner of the follower.
type Path struct {
	Points []Point
	cum    []float64 // cum[i] is the arc length from Points[0] to Points[i]
}

// NewPath builds a path through the given points.
func NewPath(points ...Point) Path {
	p := Path{Points: points, cum: make([]float64, len(points))}
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		p.cum[i] = p.cum[i-1] + math.Hypot(dx, dy)
	}
	return p
}

// ZigzagPath builds the nine-waypoint zigzag an enemy or power-up follows.
// X alternates start, start+amplitude, start, start-amplitude, ... (the
// signs swap when mirrored) and is clamped so a follower of the given width
// stays inside a playfield playW wide.
func ZigzagPath(startX, amplitude, width, playW float64, mirrored bool) Path {
	maxX := playW - width
	swing := amplitude
	if mirrored {
		swing = -amplitude
	}
	points := make([]Point, len(zigzagRows))
	for i, y := range zigzagRows {
		x := startX
		switch i % 4 {
		case 1:
			x += swing
		case 3:
			x -= swing
		}
		points[i] = Point{X: core.ClampF(x, 0, maxX), Y: y}
	}
	return NewPath(points...)
}

// Length returns the total arc length.
func (p Path) Length() float64 {
	if len(p.cum) == 0 {
		return 0
	}
	return p.cum[len(p.cum)-1]
}

// At returns the position after elapsed time on a traversal lasting
// duration, and whether the traversal has finished.
func (p Path) At(elapsed, duration time.Duration) (Point, bool) {
	if len(p.Points) == 0 {
		return Point{}, true
	}
	if elapsed <= 0 {
		return p.Points[0], duration <= 0
	}
	if duration <= 0 || elapsed >= duration {
		return p.Points[len(p.Points)-1], true
	}

	target := p.Length() * float64(elapsed) / float64(duration)
	for i := 1; i < len(p.Points); i++ {
		if target > p.cum[i] {
			continue
		}
		seg := p.cum[i] - p.cum[i-1]
		if seg == 0 {
			return p.Points[i], false
		}
		f := (target - p.cum[i-1]) / seg
		a, b := p.Points[i-1], p.Points[i]
		return Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}, false
	}
	return p.Points[len(p.Points)-1], false
}
