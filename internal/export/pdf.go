// Package export writes composed frames to PDF snapshots.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"TouchTrails/internal/state"
)

// Options control how a frame is laid out on the page.
type Options struct {
	// Width and Height are the surface size in points; the page matches it.
	Width, Height float64
	// DefaultRadius is used for points without contact radii.
	DefaultRadius float64
	// SnapFactor bounds trail segments to SnapFactor*DefaultRadius.
	SnapFactor float64
}

// WriteFrame renders f as a single-page PDF onto w.
func WriteFrame(w io.Writer, f state.Frame, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: page size %vx%v must be positive", opts.Width, opts.Height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	p.SetDrawColor(30, 136, 229)
	p.SetLineWidth(1)
	p.Rect(1, 1, opts.Width-3, opts.Height-3, "D")

	drawSwatches(p, f.Swatches)

	for _, l := range f.Links(opts.DefaultRadius * opts.SnapFactor) {
		setDraw(p, l.Color)
		p.SetAlpha(state.Fade(l.Age), "Normal")
		p.Line(l.From.X, l.From.Y, l.To.X, l.To.Y)
	}
	for _, g := range f.Ghosts {
		drawContact(p, g.Ghost.ContactPoint, opts.DefaultRadius, state.Fade(g.Age))
	}
	for _, tp := range f.Trail {
		drawContact(p, tp.Point, opts.DefaultRadius, state.Fade(tp.Age))
	}
	p.SetAlpha(1, "Normal")
	for _, lp := range f.Live {
		drawLive(p, lp.Point, opts)
	}

	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(90, 90, 90)
	p.Text(8, opts.Height-8, fmt.Sprintf("t=%v brush=%s ghosts=%d live=%d", f.Now.Round(time.Millisecond), f.Brush, len(f.Ghosts), len(f.Live)))

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteFile writes f to a timestamped PDF inside dir and returns its path.
func WriteFile(dir string, f state.Frame, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("touchtrails-%s.pdf", time.Now().Format("20060102-150405.000")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer file.Close()

	if err := WriteFrame(file, f, opts); err != nil {
		return "", err
	}
	return path, file.Close()
}

func drawSwatches(p *gofpdf.Fpdf, swatches []state.Swatch) {
	for _, s := range swatches {
		setFill(p, s.Color)
		p.SetDrawColor(150, 150, 150)
		p.SetLineWidth(1)
		if s.Selected {
			p.SetLineWidth(3)
			p.SetDrawColor(33, 33, 33)
		}
		p.Rect(s.Area.X, s.Area.Y, s.Area.Width, s.Area.Height, "FD")
	}
}

func drawContact(p *gofpdf.Fpdf, cp state.ContactPoint, def, alpha float64) {
	r := cp.DisplayRadii(def)
	p.SetAlpha(alpha, "Normal")
	p.SetFillColor(255, 255, 255)
	setDraw(p, cp.Color)
	p.SetLineWidth(3)
	p.Ellipse(cp.Pos.X, cp.Pos.Y, r.X, r.Y, 0, "FD")
}

func drawLive(p *gofpdf.Fpdf, cp state.ContactPoint, opts Options) {
	drawContact(p, cp, opts.DefaultRadius, 1)

	p.SetLineWidth(0.5)
	p.SetDrawColor(120, 120, 120)
	p.Line(0, cp.Pos.Y, opts.Width, cp.Pos.Y)
	p.Line(cp.Pos.X, 0, cp.Pos.X, opts.Height)

	r := cp.DisplayRadii(opts.DefaultRadius)
	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(33, 33, 33)
	p.Text(cp.Pos.X+r.X+4, cp.Pos.Y-r.Y-4, fmt.Sprintf("r=%.1f,%.1f p=%.2f", r.X, r.Y, cp.Pressure))
}

func setDraw(p *gofpdf.Fpdf, c state.Color) {
	v := c.NRGBA()
	p.SetDrawColor(int(v.R), int(v.G), int(v.B))
}

func setFill(p *gofpdf.Fpdf, c state.Color) {
	v := c.NRGBA()
	p.SetFillColor(int(v.R), int(v.G), int(v.B))
}
