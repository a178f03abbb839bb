package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"TouchTrails/internal/state"
)

var (
	swatchBorder   = color.Gray{Y: 150}
	selectedBorder = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
)

// swatchObjects draws the palette band, one rectangle per row. The selected
// row gets a heavier border.
func swatchObjects(swatches []state.Swatch) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(swatches))
	for _, s := range swatches {
		rect := canvas.NewRectangle(s.Color.NRGBA())
		rect.StrokeColor = swatchBorder
		rect.StrokeWidth = 1
		if s.Selected {
			rect.StrokeColor = selectedBorder
			rect.StrokeWidth = 4
		}
		rect.Move(fyne.NewPos(float32(s.Area.X), float32(s.Area.Y)))
		rect.Resize(fyne.NewSize(float32(s.Area.Width), float32(s.Area.Height)))
		out = append(out, rect)
	}
	return out
}
