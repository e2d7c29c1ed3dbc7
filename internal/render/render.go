// internal/render/render.go
//
// Reveal canvas rendering.
// Responsibilities:
//   - Map a tile index to its sub-rectangle of the square-cropped artwork
//     and to its cell on the output canvas.
//   - Load artworks from ARTWORK_DIR once (jpeg, png, webp), deduping
//     concurrent first loads.
//   - Draw the revealed tiles scaled into a square canvas; hidden cells
//     stay the background color.
//
// Notes:
//   - Asset failures are reported to the caller only; game state is never
//     touched from here.

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// ErrNoArtwork is returned when the image file is missing or unreadable.
var ErrNoArtwork = errors.New("render: artwork unavailable")

// Background fills cells that are not revealed yet.
var Background = color.RGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}

// ───────────────────────────────────────────────────────────────────────────────
// Geometry
// ───────────────────────────────────────────────────────────────────────────────

// Square returns the largest centered square inside b.
func Square(b image.Rectangle) image.Rectangle {
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

// cell splits the square sq into grid×grid parts and returns part idx,
// row-major from the top-left.
func cell(idx, grid int, sq image.Rectangle) image.Rectangle {
	side := sq.Dx()
	row, col := idx/grid, idx%grid
	return image.Rect(
		sq.Min.X+col*side/grid,
		sq.Min.Y+row*side/grid,
		sq.Min.X+(col+1)*side/grid,
		sq.Min.Y+(row+1)*side/grid,
	)
}

// TileRect returns the source rectangle of tile idx for an image with bounds src.
func TileRect(idx, grid int, src image.Rectangle) image.Rectangle {
	return cell(idx, grid, Square(src))
}

// CellRect returns the canvas rectangle of tile idx on a side×side canvas.
func CellRect(idx, grid, side int) image.Rectangle {
	return cell(idx, grid, image.Rect(0, 0, side, side))
}

// ───────────────────────────────────────────────────────────────────────────────
// Renderer
// ───────────────────────────────────────────────────────────────────────────────

// Renderer draws reveal canvases from artwork files under a root directory.
type Renderer struct {
	dir  string
	size int

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]image.Image
}

// New constructs a Renderer reading from dir and producing size×size canvases.
func New(dir string, size int) *Renderer {
	if size <= 0 {
		size = 360
	}
	return &Renderer{dir: dir, size: size, cache: map[string]image.Image{}}
}

// Size returns the canvas side in pixels.
func (r *Renderer) Size() int { return r.size }

// path resolves name under the root; ".." cannot climb out of it.
func (r *Renderer) path(name string) string {
	return filepath.Join(r.dir, filepath.Clean("/"+name))
}

// load returns the decoded artwork, decoding it at most once.
func (r *Renderer) load(ctx context.Context, name string) (image.Image, error) {
	if name == "" {
		return nil, ErrNoArtwork
	}
	r.mu.RLock()
	img, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(r.path(name))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoArtwork, name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoArtwork, err)
		}
		defer f.Close()

		img, format, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrNoArtwork, name, err)
		}
		log.Debug().Str("artwork", name).Str("format", format).
			Int("w", img.Bounds().Dx()).Int("h", img.Bounds().Dy()).Msg("artwork loaded")

		r.mu.Lock()
		r.cache[name] = img
		r.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Render draws the visible tiles of artwork name on a grid×grid canvas.
// Tile indexes outside the grid are ignored.
func (r *Renderer) Render(ctx context.Context, name string, grid int, tiles []int) (*image.RGBA, error) {
	if grid < 1 {
		return nil, errors.New("render: grid must be at least 1")
	}
	src, err := r.load(ctx, name)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	for _, t := range tiles {
		if t < 0 || t >= grid*grid {
			continue
		}
		draw.ApproxBiLinear.Scale(dst, CellRect(t, grid, r.size), src, TileRect(t, grid, src.Bounds()), draw.Src, nil)
	}
	return dst, nil
}

// WritePNG renders and encodes the canvas as PNG to w.
func (r *Renderer) WritePNG(ctx context.Context, w io.Writer, name string, grid int, tiles []int) error {
	img, err := r.Render(ctx, name, grid, tiles)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
