// Package export turns a finished raster into PNG files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"
)

// StampLayout is the timestamp prefix of saved file names.
const StampLayout = "20060102_150405"

// ErrEmptyRaster is returned when there is nothing to encode.
var ErrEmptyRaster = errors.New("export: empty raster")

// Snapshot composites raster over an opaque bg and encodes the result as PNG.
// The raster itself is left untouched.
func Snapshot(raster image.Image, bg color.NRGBA) ([]byte, error) {
	if raster == nil {
		return nil, ErrEmptyRaster
	}
	b := raster.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyRaster
	}
	bg.A = 255

	dc := gg.NewContext(b.Dx(), b.Dy())
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(bg))
	dc.DrawImage(gg.ImageBufFromImage(raster), 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName builds "<stamp>_<label>.png".
func FileName(label string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", at.Format(StampLayout), sanitizeLabel(label))
}

// Save writes data to dir under a timestamped name and returns the path.
func Save(dir, label string, data []byte, at time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(label, at))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteSnapshot composites raster and saves it in one step.
func WriteSnapshot(dir, label string, raster image.Image, bg color.NRGBA, at time.Time) (string, error) {
	data, err := Snapshot(raster, bg)
	if err != nil {
		return "", err
	}
	return Save(dir, label, data, at)
}

// sanitizeLabel keeps file names portable; empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
