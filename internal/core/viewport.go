package core

// Viewport maps play-field coordinates onto a rectangle of screen cells.
// The field keeps its aspect only approximately; terminal cells are not square.
type Viewport struct {
	FieldW, FieldH float64 // play-field size in simulation units
	X, Y           int     // top-left cell of the mapped area
	W, H           int     // size of the mapped area in cells
}

// NewViewport fits a field of fieldW x fieldH units into a cellsW x cellsH area
// whose top-left corner is at (x, y).
func NewViewport(fieldW, fieldH float64, x, y, cellsW, cellsH int) Viewport {
	return Viewport{
		FieldW: fieldW,
		FieldH: fieldH,
		X:      x,
		Y:      y,
		W:      Max(cellsW, 1),
		H:      Max(cellsH, 1),
	}
}

// ToCell converts a field position into a cell position inside the viewport.
// Results are clamped so that positions on the field edges stay visible.
func (v Viewport) ToCell(p Vec2) (int, int) {
	cx := int(p.X / v.FieldW * float64(v.W))
	cy := int(p.Y / v.FieldH * float64(v.H))
	return v.X + Clamp(cx, 0, v.W-1), v.Y + Clamp(cy, 0, v.H-1)
}

// Contains reports whether the field position maps inside the field bounds.
func (v Viewport) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= v.FieldW && p.Y >= 0 && p.Y <= v.FieldH
}
