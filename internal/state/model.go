package state

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"
	"time"
)

// Point is a position in surface coordinates.
type Point struct{ X, Y float64 }

// Radii describe the contact ellipse of a touch.
type Radii struct{ X, Y float64 }

// Color is a palette color name such as "red" or "blue".
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Yellow Color = "yellow"
	Black  Color = "black"
	Purple Color = "purple"
	Orange Color = "orange"
	Green  Color = "green"
	White  Color = "white"
)

// Colors lists every color a palette may hold.
var Colors = []Color{Red, Blue, Yellow, Black, Purple, Orange, Green, White}

var rgba = map[Color]color.NRGBA{
	Red:    {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	Blue:   {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	Yellow: {R: 0xfd, G: 0xd8, B: 0x35, A: 0xff},
	Black:  {R: 0x21, G: 0x21, B: 0x21, A: 0xff},
	Purple: {R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
	Orange: {R: 0xfb, G: 0x8c, B: 0x00, A: 0xff},
	Green:  {R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	White:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// NRGBA returns the opaque display color; unknown names render black.
func (c Color) NRGBA() color.NRGBA {
	if v, ok := rgba[c]; ok {
		return v
	}
	return rgba[Black]
}

// ParseColor returns the named color or an error for unknown names.
func ParseColor(name string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Colors, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown color %q", name)
}

// Kind is the phase of a pointer event.
type Kind int

const (
	KindStart Kind = iota
	KindMove
	KindEnd
	KindCancel
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindMove:
		return "move"
	case KindEnd:
		return "end"
	case KindCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Touch is one changed contact inside a pointer event batch.
type Touch struct {
	ID       int
	Pos      Point
	Radii    Radii
	HasRadii bool
	Pressure float64 // 0 when the device does not report force
}

func (t Touch) validate() bool {
	if t.ID < 0 {
		return false
	}
	for _, v := range []float64{t.Pos.X, t.Pos.Y, t.Radii.X, t.Radii.Y, t.Pressure} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Event is a batch of changed contacts sharing one kind and one timestamp.
type Event struct {
	Kind    Kind
	Now     time.Duration
	Touches []Touch
}

// ContactPoint is one sample of a single contact.
type ContactPoint struct {
	Time     time.Duration
	Pos      Point
	Radii    Radii
	HasRadii bool
	Pressure float64
	Color    Color
}

// Stamp implements Timed.
func (p ContactPoint) Stamp() time.Duration { return p.Time }

// DisplayRadii returns the contact radii, or def on both axes when the
// device did not report any.
func (p ContactPoint) DisplayRadii(def float64) Radii {
	if !p.HasRadii {
		return Radii{X: def, Y: def}
	}
	return p.Radii
}

func newContactPoint(t Touch, now time.Duration, c Color) ContactPoint {
	return ContactPoint{
		Time:     now,
		Pos:      t.Pos,
		Radii:    t.Radii,
		HasRadii: t.HasRadii,
		Pressure: t.Pressure,
		Color:    c,
	}
}

// Contact is an active contact and its point history, earliest first.
type Contact struct {
	ID      int
	History []ContactPoint
}

// Last returns the most recent point of the contact.
func (c Contact) Last() ContactPoint { return c.History[len(c.History)-1] }

// Color is the brush color fixed at the contact's start.
func (c Contact) Color() Color { return c.History[0].Color }

// Ghost is the fading snapshot of a terminated contact's final point.
type Ghost struct {
	ContactPoint
	ContactID int
}

// Stats is a small summary used by diagnostics and the FPS overlay.
type Stats struct {
	Active int
	Points int
	Ghosts int
	Brush  Color
}
