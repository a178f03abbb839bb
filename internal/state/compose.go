package state

import (
	"math"
	"time"
)

// TrailPoint is a historical point of an active contact with its age.
type TrailPoint struct {
	ContactID int
	Point     ContactPoint
	Age       float64
}

// LivePoint is the latest point of an active contact.
type LivePoint struct {
	ContactID int
	Point     ContactPoint
}

// GhostPoint is a ghost with its age.
type GhostPoint struct {
	Ghost Ghost
	Age   float64
}

// Frame is everything a renderer needs for one redraw. Ages are in [0, 1].
type Frame struct {
	Now      time.Duration
	Expiry   time.Duration
	Ghosts   []GhostPoint
	Trail    []TrailPoint
	Live     []LivePoint
	Swatches []Swatch
	Brush    Color
}

// Compose projects the board into a Frame at now without changing it.
// Ghosts come first in store order, then trail points by ascending contact
// identifier. The latest point of each contact goes to Live, never Trail.
func (b *Board) Compose(now time.Duration) Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f := Frame{
		Now:    now,
		Expiry: b.expiry,
		Brush:  b.brush.Current(),
	}
	f.Swatches = b.toolbar.Swatches(f.Brush)

	for _, g := range b.ghosts.ghosts {
		if Expired(now, g.Time, b.expiry) {
			continue
		}
		f.Ghosts = append(f.Ghosts, GhostPoint{Ghost: g, Age: Age(now, g.Time, b.expiry)})
	}

	for _, c := range b.activeLocked() {
		last := len(c.History) - 1
		for _, p := range c.History[:last] {
			if Expired(now, p.Time, b.expiry) {
				continue
			}
			f.Trail = append(f.Trail, TrailPoint{ContactID: c.ID, Point: p, Age: Age(now, p.Time, b.expiry)})
		}
		f.Live = append(f.Live, LivePoint{ContactID: c.ID, Point: c.History[last]})
	}
	return f
}

// Fade maps an age in [0, 1] to an opacity, falling off quadratically.
func Fade(age float64) float64 {
	if age <= 0 {
		return 1
	}
	if age >= 1 {
		return 0
	}
	return (1 - age) * (1 - age)
}

// Link joins two consecutive points of one contact.
type Link struct {
	ContactID int
	From, To  Point
	Color     Color
	Age       float64 // age of the older end
}

// Links returns the segments between consecutive points of each contact,
// ending at its live point. Segments longer than maxGap are dropped so a
// fast or jumpy contact shows separate dots instead of a stretched stroke;
// maxGap <= 0 keeps every segment.
func (f Frame) Links(maxGap float64) []Link {
	live := make(map[int]Point, len(f.Live))
	for _, lp := range f.Live {
		live[lp.ContactID] = lp.Point.Pos
	}

	var out []Link
	add := func(id int, from ContactPoint, age float64, to Point) {
		if maxGap > 0 && math.Hypot(to.X-from.Pos.X, to.Y-from.Pos.Y) > maxGap {
			return
		}
		out = append(out, Link{ContactID: id, From: from.Pos, To: to, Color: from.Color, Age: age})
	}
	for i, tp := range f.Trail {
		if i+1 < len(f.Trail) && f.Trail[i+1].ContactID == tp.ContactID {
			add(tp.ContactID, tp.Point, tp.Age, f.Trail[i+1].Point.Pos)
			continue
		}
		if to, ok := live[tp.ContactID]; ok {
			add(tp.ContactID, tp.Point, tp.Age, to)
		}
	}
	return out
}
