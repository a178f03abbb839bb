package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"TouchTrails/internal/state"
)

var (
	backgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	borderColor     = color.NRGBA{R: 30, G: 136, B: 229, A: 255}
	crosshairColor  = color.NRGBA{R: 120, G: 120, B: 120, A: 160}
	labelColor      = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
)

// buildObjects paints one frame: background and border, toolbar, trail
// segments, ghosts and trail dots fading with age, then the live contacts
// with crosshairs and radius labels on top.
func buildObjects(f state.Frame, size fyne.Size, st Style, fps float64) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, 4+len(f.Swatches)+2*len(f.Trail)+len(f.Ghosts)+4*len(f.Live))

	bg := canvas.NewRectangle(backgroundColor)
	bg.Resize(size)
	objects = append(objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = borderColor
	border.StrokeWidth = 1
	border.Move(fyne.NewPos(1, 1))
	border.Resize(fyne.NewSize(size.Width-3, size.Height-3))
	objects = append(objects, border)

	objects = append(objects, swatchObjects(f.Swatches)...)

	for _, l := range f.Links(st.DefaultRadius * st.SnapFactor) {
		line := canvas.NewLine(fade(l.Color.NRGBA(), state.Fade(l.Age)))
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(float32(l.From.X), float32(l.From.Y))
		line.Position2 = fyne.NewPos(float32(l.To.X), float32(l.To.Y))
		objects = append(objects, line)
	}
	for _, g := range f.Ghosts {
		objects = append(objects, contactCircle(g.Ghost.ContactPoint, st.DefaultRadius, state.Fade(g.Age)))
	}
	for _, tp := range f.Trail {
		objects = append(objects, contactCircle(tp.Point, st.DefaultRadius, state.Fade(tp.Age)))
	}
	for _, lp := range f.Live {
		objects = append(objects, liveObjects(lp.Point, size, st.DefaultRadius)...)
	}

	if st.ShowFPS {
		txt := canvas.NewText(fmt.Sprintf("%.0f fps", fps), labelColor)
		txt.TextSize = 12
		txt.Move(fyne.NewPos(size.Width-70, 8))
		objects = append(objects, txt)
	}
	return objects
}

func contactCircle(cp state.ContactPoint, def, alpha float64) *canvas.Circle {
	r := cp.DisplayRadii(def)
	c := canvas.NewCircle(fade(backgroundColor, alpha))
	c.StrokeColor = fade(cp.Color.NRGBA(), alpha)
	c.StrokeWidth = 3
	c.Move(fyne.NewPos(float32(cp.Pos.X-r.X), float32(cp.Pos.Y-r.Y)))
	c.Resize(fyne.NewSize(float32(2*r.X), float32(2*r.Y)))
	return c
}

func liveObjects(cp state.ContactPoint, size fyne.Size, def float64) []fyne.CanvasObject {
	x, y := float32(cp.Pos.X), float32(cp.Pos.Y)

	h := canvas.NewLine(crosshairColor)
	h.Position1 = fyne.NewPos(0, y)
	h.Position2 = fyne.NewPos(size.Width, y)
	v := canvas.NewLine(crosshairColor)
	v.Position1 = fyne.NewPos(x, 0)
	v.Position2 = fyne.NewPos(x, size.Height)

	r := cp.DisplayRadii(def)
	label := canvas.NewText(fmt.Sprintf("%.1f × %.1f", r.X, r.Y), labelColor)
	label.TextSize = 11
	label.Move(fyne.NewPos(x+float32(r.X)+4, y-float32(r.Y)-16))

	return []fyne.CanvasObject{h, v, contactCircle(cp, def, 1), label}
}

// fade scales c's alpha by a in [0, 1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
