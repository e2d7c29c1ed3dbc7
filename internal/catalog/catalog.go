// internal/catalog/catalog.go
//
// Painting catalog management.
//
// Responsibilities:
//   - Load the catalog from a CATALOG_FILE (YAML) or fall back to the
//     embedded default in assets/catalog.yaml.
//   - Validate paintings and round configurations once at startup.
//   - Resolve the effective grid and hand-authored tiles for a round.
//
// Catalog file shape:
//
//	rounds:
//	  - {name: sketch, grid: 4, points: 100}
//	paintings:
//	  - {id: starry-night, artist: van Gogh, image: artworks/x.jpg, grid: 6}
//
// Constraints:
//   • Painting ids are unique and non-empty; the order of paintings is the
//     daily schedule and must only ever be appended to.
//   • Round grids are distinct; points are positive.
//   • No rounds means a single round that keeps each painting's grid.

package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crovisgrind/art-guessing-game/assets"
	"github.com/crovisgrind/art-guessing-game/internal/game"
)

// DefaultGrid is used for paintings that do not set one.
const DefaultGrid = 6

// DefaultPoints is the base score of the implied single round.
const DefaultPoints = 100

// Painting is one catalog entry.
type Painting struct {
	ID     string `yaml:"id" json:"id"`
	Artist string `yaml:"artist" json:"-"`
	Title  string `yaml:"title" json:"-"`
	Image  string `yaml:"image" json:"-"`
	Grid   int    `yaml:"grid" json:"grid"`
	Tiles  []int  `yaml:"tiles,omitempty" json:"-"`
}

// Round is one daily round configuration.
type Round struct {
	Name   string `yaml:"name" json:"name"`
	Grid   int    `yaml:"grid" json:"grid"`
	Points int    `yaml:"points" json:"points"`
}

// Catalog is the validated, immutable set of paintings and rounds.
type Catalog struct {
	Paintings []Painting `yaml:"paintings"`
	Rounds    []Round    `yaml:"rounds"`
}

// Load reads the catalog from path, or from the embedded default when path
// is empty.
func Load(path string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = assets.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	for i := range c.Paintings {
		if c.Paintings[i].Grid == 0 {
			c.Paintings[i].Grid = DefaultGrid
		}
	}
	if len(c.Rounds) == 0 {
		c.Rounds = []Round{{Name: "daily", Points: DefaultPoints}}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate enforces the catalog constraints.
func (c *Catalog) Validate() error {
	if len(c.Paintings) == 0 {
		return errors.New("catalog: no paintings")
	}
	if len(c.Rounds) == 0 {
		return errors.New("catalog: no rounds")
	}
	grids := make(map[int]bool, len(c.Rounds))
	for i, r := range c.Rounds {
		if r.Points <= 0 {
			return fmt.Errorf("catalog: round %d: points must be positive", i)
		}
		if r.Grid < 0 {
			return fmt.Errorf("catalog: round %d: negative grid", i)
		}
		if grids[r.Grid] {
			return fmt.Errorf("catalog: round %d: grid %d used twice", i, r.Grid)
		}
		grids[r.Grid] = true
	}
	ids := make(map[string]bool, len(c.Paintings))
	for i, p := range c.Paintings {
		if p.ID == "" {
			return fmt.Errorf("catalog: painting %d: missing id", i)
		}
		if ids[p.ID] {
			return fmt.Errorf("catalog: duplicate painting id %q", p.ID)
		}
		ids[p.ID] = true
		if p.Grid < 1 {
			return fmt.Errorf("catalog: %s: grid must be at least 1", p.ID)
		}
		if len(p.Tiles) > 0 && !game.ValidPermutation(p.Tiles, p.Grid*p.Grid) {
			return fmt.Errorf("catalog: %s: tiles are not a permutation of 0..%d", p.ID, p.Grid*p.Grid-1)
		}
	}
	return nil
}

// GridFor returns the grid a painting is played at in round r.
func (c *Catalog) GridFor(p Painting, r int) int {
	if r >= 0 && r < len(c.Rounds) && c.Rounds[r].Grid > 0 {
		return c.Rounds[r].Grid
	}
	return p.Grid
}

// TilesFor returns the authored reveal order when it fits grid, else nil.
func TilesFor(p Painting, grid int) []int {
	if len(p.Tiles) != grid*grid {
		return nil
	}
	return p.Tiles
}
