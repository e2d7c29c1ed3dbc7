// internal/game/reveal.go
//
// Reveal scheduling over an N×N tile grid.
//
// A puzzle instance owns a fixed permutation of tile indices; the first
// Revealed entries are visible. Each non-winning guess uncovers one more,
// a terminal transition uncovers everything.

package game

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Reveal is the permutation plus the reveal frontier.
type Reveal struct {
	Tiles    []int
	Revealed int
}

// NewReveal shuffles [0, n) with rng and reveals the first tile.
func NewReveal(n int, rng *rand.Rand) Reveal {
	return Reveal{Tiles: rng.Perm(n), Revealed: min(1, n)}
}

// RevealOne advances the frontier by one tile; no-op at the ceiling.
func (r *Reveal) RevealOne() bool {
	if r.Revealed >= len(r.Tiles) {
		return false
	}
	r.Revealed++
	return true
}

// RevealAll uncovers every tile.
func (r *Reveal) RevealAll() { r.Revealed = len(r.Tiles) }

// Visible returns the currently revealed tile indices in reveal order.
func (r Reveal) Visible() []int {
	return append([]int(nil), r.Tiles[:r.Revealed]...)
}

// ValidPermutation reports whether tiles is a permutation of [0, n).
func ValidPermutation(tiles []int, n int) bool {
	if len(tiles) != n {
		return false
	}
	seen := make([]bool, n)
	for _, t := range tiles {
		if t < 0 || t >= n || seen[t] {
			return false
		}
		seen[t] = true
	}
	return true
}

// NewRand returns a generator seeded from the operating system's entropy.
func NewRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}
