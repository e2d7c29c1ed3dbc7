package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// writeQuadrants writes an 8×8 PNG: red, green / blue, white quadrants.
func writeQuadrants(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := red
			switch {
			case x >= 4 && y < 4:
				c = green
			case x < 4 && y >= 4:
				c = blue
			case x >= 4 && y >= 4:
				c = white
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// near tolerates rounding in the scaler.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return max(x, y)-min(x, y) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestTileRectCropsToCenteredSquare(t *testing.T) {
	tests := []struct {
		idx, grid int
		src       image.Rectangle
		want      image.Rectangle
	}{
		{0, 2, image.Rect(0, 0, 100, 100), image.Rect(0, 0, 50, 50)},
		{3, 2, image.Rect(0, 0, 100, 100), image.Rect(50, 50, 100, 100)},
		{0, 2, image.Rect(0, 0, 200, 100), image.Rect(50, 0, 100, 50)},
		{1, 2, image.Rect(0, 0, 100, 160), image.Rect(50, 30, 100, 80)},
		{4, 3, image.Rect(10, 10, 40, 40), image.Rect(20, 20, 30, 30)},
	}
	for _, tt := range tests {
		if got := TileRect(tt.idx, tt.grid, tt.src); got != tt.want {
			t.Errorf("TileRect(%d, %d, %v) = %v, want %v", tt.idx, tt.grid, tt.src, got, tt.want)
		}
	}
}

func TestCellRectCoversCanvas(t *testing.T) {
	const grid, side = 3, 100
	area := 0
	for i := 0; i < grid*grid; i++ {
		r := CellRect(i, grid, side)
		area += r.Dx() * r.Dy()
		for j := 0; j < i; j++ {
			if r.Overlaps(CellRect(j, grid, side)) {
				t.Fatalf("cells %d and %d overlap", i, j)
			}
		}
	}
	if area != side*side {
		t.Fatalf("cells cover %d px, want %d", area, side*side)
	}
}

func TestRenderDrawsOnlyVisibleTiles(t *testing.T) {
	dir := t.TempDir()
	writeQuadrants(t, dir, "art/q.png")
	r := New(dir, 40)

	img, err := r.Render(context.Background(), "art/q.png", 2, []int{0, 3, 9})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(10, 10); !near(got, red) {
		t.Errorf("tile 0 = %v, want red", got)
	}
	if got := img.RGBAAt(30, 30); !near(got, white) {
		t.Errorf("tile 3 = %v, want white", got)
	}
	if got := img.RGBAAt(30, 10); got != Background {
		t.Errorf("hidden tile 1 = %v, want background", got)
	}
	if got := img.RGBAAt(10, 30); got != Background {
		t.Errorf("hidden tile 2 = %v, want background", got)
	}
}

func TestRenderMissingArtwork(t *testing.T) {
	r := New(t.TempDir(), 40)
	for _, name := range []string{"", "nope.png", "../../etc/passwd"} {
		if _, err := r.Render(context.Background(), name, 2, []int{0}); !errors.Is(err, ErrNoArtwork) {
			t.Errorf("Render(%q) err = %v, want ErrNoArtwork", name, err)
		}
	}
}

func TestRenderUndecodableArtwork(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir, 40).Render(context.Background(), "bad.png", 2, nil); !errors.Is(err, ErrNoArtwork) {
		t.Fatalf("err = %v, want ErrNoArtwork", err)
	}
}

func TestRenderCachesDecodedArtwork(t *testing.T) {
	dir := t.TempDir()
	writeQuadrants(t, dir, "q.png")
	r := New(dir, 40)
	if _, err := r.Render(context.Background(), "q.png", 2, []int{1}); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "q.png")); err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(context.Background(), "q.png", 2, []int{1})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(30, 10); !near(got, green) {
		t.Errorf("tile 1 = %v, want green", got)
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	writeQuadrants(t, dir, "q.png")
	var buf bytes.Buffer
	if err := New(dir, 16).WritePNG(context.Background(), &buf, "q.png", 4, []int{0}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}
