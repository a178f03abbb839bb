package ui

import (
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"TouchTrails/internal/state"
)

// pointerContactID is the contact identifier used for the mouse and for
// single-finger drivers that do not number their touches.
const pointerContactID = 0

// Style is the renderer's share of the configuration.
type Style struct {
	DefaultRadius float64
	SnapFactor    float64
	ShowFPS       bool
}

// TouchSurface turns fyne pointer events into board events and paints the
// board's composed frame.
type TouchSurface struct {
	widget.BaseWidget

	board *state.Board
	clock state.Clock
	log   *slog.Logger
	fps   func() float64

	mu    sync.Mutex
	style Style
	now   time.Duration
	down  bool
	last  state.Point
}

var _ fyne.Widget = (*TouchSurface)(nil)
var _ fyne.Draggable = (*TouchSurface)(nil)
var _ desktop.Mouseable = (*TouchSurface)(nil)
var _ mobile.Touchable = (*TouchSurface)(nil)

// NewTouchSurface creates a surface over board. fps may be nil.
func NewTouchSurface(board *state.Board, clock state.Clock, style Style, fps func() float64, logger *slog.Logger) *TouchSurface {
	s := &TouchSurface{
		board: board,
		clock: clock,
		log:   logger,
		fps:   fps,
		style: style,
		now:   clock.Now(),
	}
	s.ExtendBaseWidget(s)
	return s
}

// SetStyle replaces the renderer settings.
func (s *TouchSurface) SetStyle(st Style) {
	s.mu.Lock()
	s.style = st
	s.mu.Unlock()
	s.Refresh()
}

// Tick runs one redraw phase: board maintenance and a repaint at now.
// It must run on the fyne goroutine.
func (s *TouchSurface) Tick(now time.Duration) {
	s.board.Tick(now)
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	s.Refresh()
}

// Frame composes the board at the time of the last event or tick.
func (s *TouchSurface) Frame() state.Frame {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return s.board.Compose(now)
}

func (s *TouchSurface) dispatch(kind state.Kind, pos fyne.Position) {
	now := s.clock.Now()
	t := state.Touch{ID: pointerContactID, Pos: state.Point{X: float64(pos.X), Y: float64(pos.Y)}}

	if err := s.board.Apply(state.Event{Kind: kind, Now: now, Touches: []state.Touch{t}}); err != nil {
		s.log.Warn("pointer event dropped", "kind", kind, "error", err)
	}

	s.mu.Lock()
	s.now = now
	s.last = t.Pos
	s.down = kind == state.KindStart || kind == state.KindMove
	s.mu.Unlock()
	s.Refresh()
}

func (s *TouchSurface) isDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *TouchSurface) lastPos() fyne.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fyne.NewPos(float32(s.last.X), float32(s.last.Y))
}

func (s *TouchSurface) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		s.dispatch(state.KindStart, e.Position)
	}
}

func (s *TouchSurface) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary && s.isDown() {
		s.dispatch(state.KindEnd, e.Position)
	}
}

func (s *TouchSurface) Dragged(e *fyne.DragEvent) {
	if s.isDown() {
		s.dispatch(state.KindMove, e.Position)
	}
}

// DragEnd ends the contact where the drag last was; drivers that also send
// MouseUp find it already ended.
func (s *TouchSurface) DragEnd() {
	if s.isDown() {
		s.dispatch(state.KindEnd, s.lastPos())
	}
}

func (s *TouchSurface) TouchDown(e *mobile.TouchEvent) {
	s.dispatch(state.KindStart, e.Position)
}

func (s *TouchSurface) TouchUp(e *mobile.TouchEvent) {
	if s.isDown() {
		s.dispatch(state.KindEnd, e.Position)
	}
}

func (s *TouchSurface) TouchCancel(e *mobile.TouchEvent) {
	if s.isDown() {
		s.dispatch(state.KindCancel, e.Position)
	}
}

func (s *TouchSurface) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{surface: s}
	r.rebuild()
	return r
}

type surfaceRenderer struct {
	surface *TouchSurface
	objects []fyne.CanvasObject
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *surfaceRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.surface)
}

func (r *surfaceRenderer) rebuild() {
	s := r.surface
	s.mu.Lock()
	st := s.style
	s.mu.Unlock()

	fps := 0.0
	if s.fps != nil {
		fps = s.fps()
	}
	r.objects = buildObjects(s.Frame(), s.Size(), st, fps)
}

func (r *surfaceRenderer) Layout(fyne.Size) { r.rebuild() }

func (r *surfaceRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *surfaceRenderer) Destroy() {}
