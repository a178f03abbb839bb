// Package state holds the touch lifecycle: active contacts with their point
// histories, the fading ghosts they leave behind, and the brush selected
// from the toolbar.
package state

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

var (
	// ErrInvalidTouch is returned for a batch holding a negative identifier
	// or a non-finite coordinate.
	ErrInvalidTouch = errors.New("invalid touch")
	// ErrClockRegression is returned when a batch is stamped earlier than the
	// latest point of a contact it updates.
	ErrClockRegression = errors.New("clock regression")
)

// Settings are the tunables that may change while the board is running.
type Settings struct {
	Expiry  time.Duration
	Toolbar Toolbar
	// MaxHistory caps the number of points kept per contact; 0 disables the cap.
	MaxHistory int
}

// Options configure a new Board.
type Options struct {
	Settings
	InitialColor Color
	Logger       *slog.Logger
}

// Board is the whole process state: the active contact table, the ghost
// store and the brush. All methods are safe for concurrent use; each one
// runs to completion under the board lock.
type Board struct {
	mu         sync.RWMutex
	log        *slog.Logger
	expiry     time.Duration
	maxHistory int
	toolbar    Toolbar
	brush      *Brush
	contacts   map[int][]ContactPoint
	ghosts     *GhostStore
}

// NewBoard creates an empty board.
func NewBoard(opts Options) *Board {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Board{
		log:        logger,
		expiry:     opts.Expiry,
		maxHistory: opts.MaxHistory,
		toolbar:    opts.Toolbar.clone(),
		brush:      NewBrush(opts.InitialColor),
		contacts:   make(map[int][]ContactPoint),
		ghosts:     NewGhostStore(opts.Expiry),
	}
}

// Apply routes ev to the handler for its kind.
func (b *Board) Apply(ev Event) error {
	switch ev.Kind {
	case KindStart:
		return b.Start(ev.Touches, ev.Now)
	case KindMove:
		return b.Move(ev.Touches, ev.Now)
	case KindEnd:
		return b.End(ev.Touches, ev.Now)
	case KindCancel:
		return b.Cancel(ev.Touches, ev.Now)
	default:
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// Start begins a contact for every touch in batch. Touches of contacts not
// yet active are hit-tested against the toolbar first, and a hit selects the
// brush; every touch then becomes a contact colored with the resulting
// brush. A touch reusing an active identifier replaces that contact.
func (b *Board) Start(batch []Touch, now time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validate(KindStart, batch, now); err != nil {
		return err
	}

	for _, t := range batch {
		if _, active := b.contacts[t.ID]; active {
			continue
		}
		if c, ok := b.toolbar.HitTest(t.Pos); ok && b.brush.Select(c) {
			b.log.Debug("brush selected", "color", c, "x", t.Pos.X, "y", t.Pos.Y)
		}
	}

	color := b.brush.Current()
	for _, t := range batch {
		if _, active := b.contacts[t.ID]; active {
			b.log.Warn("start on active contact, discarding its history", "id", t.ID)
		}
		b.contacts[t.ID] = []ContactPoint{newContactPoint(t, now, color)}
	}
	return nil
}

// Move appends a point to every active contact in batch. Touches for
// identifiers that are not active are ignored. A move stamped at the same
// time as a contact's latest point replaces that point.
func (b *Board) Move(batch []Touch, now time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validate(KindMove, batch, now); err != nil {
		return err
	}

	for _, t := range batch {
		hist, active := b.contacts[t.ID]
		if !active {
			b.log.Debug("move for unknown contact ignored", "id", t.ID)
			continue
		}
		last := hist[len(hist)-1]
		p := newContactPoint(t, now, last.Color)
		if last.Time == now {
			hist[len(hist)-1] = p
			continue
		}
		hist = append(hist, p)
		if b.maxHistory > 0 && len(hist) > b.maxHistory {
			hist = slices.Delete(hist, 0, len(hist)-b.maxHistory)
		}
		b.contacts[t.ID] = hist
	}
	return nil
}

// End terminates every active contact in batch, leaving a ghost of its
// latest point stamped at now.
func (b *Board) End(batch []Touch, now time.Duration) error {
	return b.terminate(KindEnd, batch, now)
}

// Cancel behaves exactly like End.
func (b *Board) Cancel(batch []Touch, now time.Duration) error {
	return b.terminate(KindCancel, batch, now)
}

func (b *Board) terminate(kind Kind, batch []Touch, now time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validate(kind, batch, now); err != nil {
		return err
	}

	b.ghosts.PruneTo(now)
	for _, t := range batch {
		hist, active := b.contacts[t.ID]
		if !active {
			continue
		}
		g := Ghost{ContactPoint: hist[len(hist)-1], ContactID: t.ID}
		g.Time = now
		b.ghosts.Add(g)
		delete(b.contacts, t.ID)
	}
	return nil
}

// validate checks the whole batch before any of it is applied.
func (b *Board) validate(kind Kind, batch []Touch, now time.Duration) error {
	for _, t := range batch {
		if !t.validate() {
			b.log.Warn("batch rejected", "kind", kind, "id", t.ID, "reason", "invalid touch")
			return fmt.Errorf("%s touch %d: %w", kind, t.ID, ErrInvalidTouch)
		}
		if kind != KindMove {
			continue
		}
		if hist, ok := b.contacts[t.ID]; ok && now < hist[len(hist)-1].Time {
			b.log.Warn("batch rejected", "kind", kind, "id", t.ID, "reason", "clock regression")
			return fmt.Errorf("%s touch %d at %v: %w", kind, t.ID, now, ErrClockRegression)
		}
	}
	return nil
}

// Tick is the per-frame maintenance step. It prunes expired ghosts and
// trims trail points that aged out of the window, always keeping each
// contact's latest point.
func (b *Board) Tick(now time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pruned := b.ghosts.PruneTo(now)
	trimmed := 0
	for id, hist := range b.contacts {
		n := 0
		for n < len(hist)-1 && Expired(now, hist[n].Time, b.expiry) {
			n++
		}
		if n > 0 {
			b.contacts[id] = slices.Delete(hist, 0, n)
			trimmed += n
		}
	}
	if pruned > 0 || trimmed > 0 {
		b.log.Debug("tick", "now", now, "ghosts_pruned", pruned, "points_trimmed", trimmed)
	}
}

// Reconfigure swaps the tunables. Colors of existing contacts and ghosts
// are not touched; the brush keeps its color even if the palette drops it.
func (b *Board) Reconfigure(s Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.expiry = s.Expiry
	b.maxHistory = s.MaxHistory
	b.toolbar = s.Toolbar.clone()
	b.ghosts.SetExpiry(s.Expiry)
	b.log.Info("board reconfigured", "expiry", s.Expiry, "palette", len(s.Toolbar.Palette))
}

// Active returns a copy of the active contacts ordered by identifier.
func (b *Board) Active() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.activeLocked()
}

func (b *Board) activeLocked() []Contact {
	ids := make([]int, 0, len(b.contacts))
	for id := range b.contacts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Contact, 0, len(ids))
	for _, id := range ids {
		out = append(out, Contact{ID: id, History: slices.Clone(b.contacts[id])})
	}
	return out
}

// Ghosts returns a copy of the ghost store.
func (b *Board) Ghosts() []Ghost {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ghosts.Snapshot()
}

// Brush returns the selected color.
func (b *Board) Brush() Color {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.brush.Current()
}

// Expiry returns the current expiry window.
func (b *Board) Expiry() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expiry
}

// Stats summarizes the board.
func (b *Board) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := Stats{Active: len(b.contacts), Ghosts: b.ghosts.Len(), Brush: b.brush.Current()}
	for _, hist := range b.contacts {
		s.Points += len(hist)
	}
	return s
}
