package core

import "math"

// Viewport maps world coordinates onto a grid of screen cells.
// The whole world is always visible; axes scale independently.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
}

// NewViewport creates a viewport for the given world and cell grid.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Cols: max(cols, 1), Rows: max(rows, 1)}
}

// Col converts a world x-coordinate to a column.
func (v Viewport) Col(x float64) int {
	return int(math.Floor(x * float64(v.Cols) / v.WorldW))
}

// Row converts a world y-coordinate to a row.
func (v Viewport) Row(y float64) int {
	return int(math.Floor(y * float64(v.Rows) / v.WorldH))
}

// Span converts a world box to the cells it covers. Non-empty boxes cover at
// least one cell so thin objects stay visible.
func (v Viewport) Span(b Box) Rect {
	x0, y0 := v.Col(b.X), v.Row(b.Y)
	x1 := int(math.Ceil(b.Right() * float64(v.Cols) / v.WorldW))
	y1 := int(math.Ceil(b.Bottom() * float64(v.Rows) / v.WorldH))
	if b.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if b.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}
