package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotIsOpaquePNG(t *testing.T) {
	raster := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	raster.SetNRGBA(6, 4, color.NRGBA{R: 255, A: 255})
	bg := color.NRGBA{R: 16, G: 18, B: 24, A: 0}

	data, err := Snapshot(raster, bg)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("bounds %v", b)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				t.Fatalf("pixel (%d,%d) not opaque: alpha %d", x, y, a)
			}
		}
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if !near(r>>8, 16) || !near(g>>8, 18) || !near(b>>8, 24) {
		t.Fatalf("background pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
	if r, _, _, _ := img.At(6, 4).RGBA(); r>>8 < 128 {
		t.Fatalf("painted pixel lost its colour: red %d", r>>8)
	}
	if raster.NRGBAAt(0, 0).A != 0 {
		t.Fatal("snapshot modified the source raster")
	}
}

func near(got uint32, want int) bool {
	d := int(got) - want
	return d >= -2 && d <= 2
}

func TestSnapshotRejectsEmpty(t *testing.T) {
	if _, err := Snapshot(nil, color.NRGBA{}); !errors.Is(err, ErrEmptyRaster) {
		t.Fatalf("nil raster: %v", err)
	}
	if _, err := Snapshot(image.NewNRGBA(image.Rect(0, 0, 0, 5)), color.NRGBA{}); !errors.Is(err, ErrEmptyRaster) {
		t.Fatalf("zero-width raster: %v", err)
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	cases := map[string]string{
		"plumA mist":  "20240309_140507_plumA_mist.png",
		"":            "20240309_140507_unlabeled.png",
		"  a/b\\c  ":  "20240309_140507_a_b_c.png",
		"spiral-B.v2": "20240309_140507_spiral-B.v2.png",
	}
	for label, want := range cases {
		if got := FileName(label, at); got != want {
			t.Errorf("FileName(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	raster := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	path, err := WriteSnapshot(dir, "crystal", raster, color.NRGBA{R: 246, G: 243, B: 236, A: 255}, at)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if filepath.Base(path) != "20240102_030405_crystal.png" {
		t.Fatalf("path %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Fatalf("saved %dx%d", cfg.Width, cfg.Height)
	}
}
