package ui

import (
	"TouchTrails/internal/export"
)

// ExportSnapshot writes the current frame as a PDF into dir.
func (s *TouchSurface) ExportSnapshot(dir string) (string, error) {
	s.mu.Lock()
	st := s.style
	s.mu.Unlock()

	size := s.Size()
	path, err := export.WriteFile(dir, s.Frame(), export.Options{
		Width:         float64(size.Width),
		Height:        float64(size.Height),
		DefaultRadius: st.DefaultRadius,
		SnapFactor:    st.SnapFactor,
	})
	if err != nil {
		return "", err
	}
	s.log.Info("snapshot exported", "path", path)
	return path, nil
}
