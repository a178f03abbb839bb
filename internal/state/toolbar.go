package state

import "math"

// Area is an axis-aligned rectangle on the surface.
type Area struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the area, right and bottom edges
// excluded.
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width &&
		p.Y >= a.Y && p.Y < a.Y+a.Height
}

// ToolbarBounds is the band at the left edge of the surface holding the
// palette. It spans x in [0, Width) and y in [Top, Bottom).
type ToolbarBounds struct {
	Width  float64
	Top    float64
	Bottom float64
}

// Toolbar maps surface coordinates to palette colors.
type Toolbar struct {
	Bounds    ToolbarBounds
	Palette   []Color
	RowHeight float64
}

// Swatch is one palette entry as laid out on the surface.
type Swatch struct {
	Color    Color
	Area     Area
	Selected bool
}

// HitTest returns the palette color under p, or false when p is outside the
// toolbar. Rows past the end of the palette clamp to the last color.
func (tb Toolbar) HitTest(p Point) (Color, bool) {
	if len(tb.Palette) == 0 || tb.RowHeight <= 0 {
		return "", false
	}
	if !(p.X < tb.Bounds.Width && p.Y >= tb.Bounds.Top && p.Y < tb.Bounds.Bottom) {
		return "", false
	}
	idx := int(math.Floor((p.Y - tb.Bounds.Top) / tb.RowHeight))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tb.Palette) {
		idx = len(tb.Palette) - 1
	}
	return tb.Palette[idx], true
}

// Swatches lays out one row per palette color, marking the selected one.
// Rows are cut off at the bottom of the toolbar.
func (tb Toolbar) Swatches(selected Color) []Swatch {
	out := make([]Swatch, 0, len(tb.Palette))
	for i, c := range tb.Palette {
		top := tb.Bounds.Top + float64(i)*tb.RowHeight
		if top >= tb.Bounds.Bottom {
			break
		}
		h := tb.RowHeight
		if top+h > tb.Bounds.Bottom {
			h = tb.Bounds.Bottom - top
		}
		out = append(out, Swatch{
			Color:    c,
			Area:     Area{X: 0, Y: top, Width: tb.Bounds.Width, Height: h},
			Selected: c == selected,
		})
	}
	return out
}

func (tb Toolbar) clone() Toolbar {
	tb.Palette = append([]Color(nil), tb.Palette...)
	return tb
}
