package core

import "strings"

// Cell is one screen position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a fixed-size grid of cells that games draw into.
// The platform layer turns it into terminal output.
type Screen struct {
	width, height int
	cells         []Cell // row-major
}

// NewScreen creates a blank screen. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in cells.
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions. Content in the overlapping area is kept.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.width && height == s.height {
		return
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blank
	}
	for y := 0; y < min(height, s.height); y++ {
		n := min(width, s.width)
		copy(cells[y*width:y*width+n], s.cells[y*s.width:y*s.width+n])
	}
	s.width, s.height, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	s.FillColored(' ', ColorDefault)
}

// FillColored sets every cell to r in color c.
func (s *Screen) FillColored(r rune, c Color) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places an uncolored rune. Positions off the screen are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune. Positions off the screen are ignored.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space off the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell off the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text left to right from (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes colored text left to right from (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for i, r := range []rune(text) {
		s.SetColored(x+i, y, r, c)
	}
}

// DrawTextCenteredColored writes text centered on row y.
func (s *Screen) DrawTextCenteredColored(y int, text string, c Color) {
	s.DrawTextColored((s.width-len([]rune(text)))/2, y, text, c)
}

// DrawRect fills r with an uncolored rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	s.DrawRectColored(r, fill, ColorDefault)
}

// DrawRectColored fills r with a colored rune.
func (s *Screen) DrawRectColored(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLineColored(r.X, y, r.W, fill, c)
	}
}

// DrawBox outlines r with light box-drawing runes.
func (s *Screen) DrawBox(r Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	s.DrawHLineColored(r.X+1, r.Y, r.W-2, '─', ColorDefault)
	s.DrawHLineColored(r.X+1, bottom, r.W-2, '─', ColorDefault)
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

// DrawHLineColored draws length copies of r rightwards from (x, y).
func (s *Screen) DrawHLineColored(x, y, length int, r rune, c Color) {
	for i := 0; i < max(length, 0); i++ {
		s.SetColored(x+i, y, r, c)
	}
}

// String returns the runes without colors, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.cells[y*s.width : (y+1)*s.width] {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
