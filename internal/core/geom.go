// Package core holds the types shared by games and the platform layer:
// geometry, the screen buffer, input frames and runtime config.
// It has no dependencies outside the standard library.
package core

// Rect is an integer rectangle in screen cells. W and H are exclusive extents.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the rectangle with top-left (x, y) and size w by h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the middle cell, rounded toward the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Box is an axis-aligned bounding box in playfield pixels. Y grows downward.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoxAt builds a box from its top-left corner and size.
func BoxAt(x, y, w, h float64) Box {
	return Box{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// BoxAround builds a square box of half-extent half centered on (cx, cy).
func BoxAround(cx, cy, half float64) Box {
	return Box{Left: cx - half, Top: cy - half, Right: cx + half, Bottom: cy + half}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Overlaps reports whether the open interiors of b and o intersect.
// Touching edges is not an overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right && b.Right > o.Left && b.Top < o.Bottom && b.Bottom > o.Top
}

// ClampF limits val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return max(lo, min(val, hi))
}
