package state

// Brush is the currently selected draw color.
type Brush struct {
	current Color
}

// NewBrush returns a brush set to initial.
func NewBrush(initial Color) *Brush {
	return &Brush{current: initial}
}

// Current returns the selected color.
func (b *Brush) Current() Color { return b.current }

// Select changes the color and reports whether it differed.
func (b *Brush) Select(c Color) bool {
	if c == b.current {
		return false
	}
	b.current = c
	return true
}
