package ui

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouchTrails/internal/state"
)

func TestFade(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 200}
	assert.Equal(t, uint8(200), fade(c, 1).A)
	assert.Equal(t, uint8(100), fade(c, 0.5).A)
	assert.Equal(t, uint8(0), fade(c, -2).A)
	assert.Equal(t, uint8(200), fade(c, 7).A)
	assert.Equal(t, uint8(10), fade(c, 0.5).R)
}

func TestContactCircleUsesDefaultRadius(t *testing.T) {
	c := contactCircle(state.ContactPoint{Pos: state.Point{X: 100, Y: 100}, Color: state.Red}, 30, 1)
	assert.Equal(t, fyne.NewPos(70, 70), c.Position())
	assert.Equal(t, fyne.NewSize(60, 60), c.Size())
	assert.Equal(t, state.Red.NRGBA(), c.StrokeColor)

	c = contactCircle(state.ContactPoint{Pos: state.Point{X: 100, Y: 100}, Radii: state.Radii{X: 10, Y: 5}, HasRadii: true}, 30, 0.25)
	assert.Equal(t, fyne.NewSize(20, 10), c.Size())
	assert.Equal(t, uint8(64), c.StrokeColor.(color.NRGBA).A)
}

func TestBuildObjects(t *testing.T) {
	f := state.Frame{
		Now:    time.Second,
		Expiry: time.Second,
		Ghosts: []state.GhostPoint{{Ghost: state.Ghost{ContactPoint: state.ContactPoint{Pos: state.Point{X: 500, Y: 500}}}, Age: 0.5}},
		Trail: []state.TrailPoint{
			{ContactID: 1, Point: state.ContactPoint{Pos: state.Point{X: 300, Y: 300}}, Age: 0.2},
		},
		Live:     []state.LivePoint{{ContactID: 1, Point: state.ContactPoint{Pos: state.Point{X: 310, Y: 300}}}},
		Swatches: []state.Swatch{{Color: state.Red, Area: state.Area{Width: 100, Height: 54}, Selected: true}, {Color: state.Blue, Area: state.Area{Y: 54, Width: 100, Height: 54}}},
	}

	objs := buildObjects(f, fyne.NewSize(800, 600), Style{DefaultRadius: 30, SnapFactor: 3}, 0)

	var rects, lines, circles, texts int
	for _, o := range objs {
		switch o.(type) {
		case *canvas.Rectangle:
			rects++
		case *canvas.Line:
			lines++
		case *canvas.Circle:
			circles++
		case *canvas.Text:
			texts++
		}
	}
	assert.Equal(t, 4, rects, "background, border, two swatches")
	assert.Equal(t, 3, lines, "one trail link and the crosshair")
	assert.Equal(t, 3, circles, "ghost, trail dot, live point")
	assert.Equal(t, 1, texts, "radius label only, fps hidden")
}

func TestSwatchObjectsMarkSelection(t *testing.T) {
	objs := swatchObjects([]state.Swatch{
		{Color: state.Red, Area: state.Area{Width: 100, Height: 54}},
		{Color: state.Blue, Area: state.Area{Y: 54, Width: 100, Height: 54}, Selected: true},
	})
	require.Len(t, objs, 2)
	assert.Equal(t, float32(1), objs[0].(*canvas.Rectangle).StrokeWidth)
	assert.Equal(t, float32(4), objs[1].(*canvas.Rectangle).StrokeWidth)
	assert.Equal(t, fyne.NewPos(0, 54), objs[1].Position())
}
