package ui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouchTrails/internal/state"
)

func newTestSurface(t *testing.T) (*TouchSurface, *state.Board, *state.ManualClock) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	board := state.NewBoard(state.Options{
		Settings: state.Settings{
			Expiry: 100 * time.Millisecond,
			Toolbar: state.Toolbar{
				Bounds:    state.ToolbarBounds{Width: 100, Top: 50, Bottom: 450},
				Palette:   []state.Color{state.Red, state.Blue, state.Yellow},
				RowHeight: 54,
			},
		},
		InitialColor: state.Blue,
	})
	clock := state.NewManualClock(0)
	s := NewTouchSurface(board, clock, Style{DefaultRadius: 30, SnapFactor: 3, ShowFPS: true}, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Resize(fyne.NewSize(800, 600))
	return s, board, clock
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestMouseStrokeLeavesGhost(t *testing.T) {
	s, board, clock := newTestSurface(t)

	s.MouseDown(mouse(200, 200))
	clock.Advance(10 * time.Millisecond)
	s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(220, 210)}})

	active := board.Active()
	require.Len(t, active, 1)
	assert.Equal(t, pointerContactID, active[0].ID)
	assert.Len(t, active[0].History, 2)

	clock.Advance(10 * time.Millisecond)
	s.MouseUp(mouse(220, 210))
	s.DragEnd()

	assert.Empty(t, board.Active())
	ghosts := board.Ghosts()
	require.Len(t, ghosts, 1)
	assert.Equal(t, state.Point{X: 220, Y: 210}, ghosts[0].Pos)
	assert.Equal(t, 20*time.Millisecond, ghosts[0].Time)
}

func TestDragEndWithoutMouseUp(t *testing.T) {
	s, board, clock := newTestSurface(t)

	s.MouseDown(mouse(300, 300))
	clock.Advance(5 * time.Millisecond)
	s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(310, 300)}})
	clock.Advance(5 * time.Millisecond)
	s.DragEnd()

	assert.Empty(t, board.Active())
	require.Len(t, board.Ghosts(), 1)
}

func TestSecondaryButtonIgnored(t *testing.T) {
	s, board, _ := newTestSurface(t)
	ev := mouse(300, 300)
	ev.Button = desktop.MouseButtonSecondary
	s.MouseDown(ev)
	assert.Empty(t, board.Active())
}

func TestToolbarTapSelectsBrush(t *testing.T) {
	s, board, _ := newTestSurface(t)
	s.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 60)}})

	assert.Equal(t, state.Red, board.Brush())
	require.Len(t, board.Active(), 1)
	assert.Equal(t, state.Red, board.Active()[0].Color())
}

func TestTouchCancel(t *testing.T) {
	s, board, clock := newTestSurface(t)
	s.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(400, 400)}})
	clock.Advance(time.Millisecond)
	s.TouchCancel(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(400, 400)}})

	assert.Empty(t, board.Active())
	assert.Len(t, board.Ghosts(), 1)
}

func TestDragWithoutPressIsIgnored(t *testing.T) {
	s, board, _ := newTestSurface(t)
	s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	s.TouchUp(&mobile.TouchEvent{})
	assert.Empty(t, board.Active())
	assert.Empty(t, board.Ghosts())
}

func TestTickPrunesAndRepaints(t *testing.T) {
	s, board, clock := newTestSurface(t)
	s.MouseDown(mouse(400, 300))
	clock.Advance(10 * time.Millisecond)
	s.MouseUp(mouse(400, 300))
	require.Len(t, s.Frame().Ghosts, 1)

	s.Tick(clock.Advance(200 * time.Millisecond))
	assert.Empty(t, board.Ghosts())
	assert.Empty(t, s.Frame().Ghosts)

	r := test.WidgetRenderer(s)
	circles := 0
	for _, o := range r.Objects() {
		if _, ok := o.(*canvas.Circle); ok {
			circles++
		}
	}
	assert.Zero(t, circles)
}

func TestRendererDrawsLiveContact(t *testing.T) {
	s, _, _ := newTestSurface(t)
	s.MouseDown(mouse(400, 300))

	r := test.WidgetRenderer(s)
	r.Refresh()
	var circles, texts int
	for _, o := range r.Objects() {
		switch o.(type) {
		case *canvas.Circle:
			circles++
		case *canvas.Text:
			texts++
		}
	}
	assert.Equal(t, 1, circles)
	// radius label and fps readout
	assert.Equal(t, 2, texts)
}
