package pizza

import "math"

// Star is one background point. Far stars scroll at half speed.
type Star struct {
	Point
	Far bool
}

// Background is an endlessly scrolling star field. The field is one
// playfield tall and wraps at the bottom edge, so two stacked copies of
// it always cover the screen.
type Background struct {
	stars  []Star
	height float64
	offset float64
}

// NewBackground scatters count stars over a width x height field.
func NewBackground(width, height float64, count int, seed int64) *Background {
	rng := NewRNG(seed ^ 0x5eed)
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			Point: Point{X: rng.Float64() * width, Y: rng.Float64() * height},
			Far:   rng.Intn(3) > 0,
		}
	}
	return &Background{stars: stars, height: height}
}

// Advance scrolls the field down by dy units.
func (b *Background) Advance(dy float64) {
	if b.height <= 0 {
		return
	}
	b.offset = math.Mod(b.offset+dy, 2*b.height)
}

// Offset returns how far the near layer has scrolled, in [0, 2*height).
func (b *Background) Offset() float64 {
	return b.offset
}

// Each calls fn with every star at its current scrolled position.
func (b *Background) Each(fn func(s Star)) {
	for _, s := range b.stars {
		shift := b.offset
		if s.Far {
			shift /= 2
		}
		y := math.Mod(s.Y+shift, b.height)
		fn(Star{Point: Point{X: s.X, Y: y}, Far: s.Far})
	}
}
