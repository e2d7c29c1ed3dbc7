// internal/game/engine.go
//
// Persisted game state machine for a single puzzle instance.
// Responsibilities:
//   - Load the instance record, or create it once with a fresh reveal permutation.
//   - Accept letter entry/backspace into the current row while playing.
//   - Validate, score and apply submitted guesses.
//   - Track state transitions: playing → won/lost (terminal).
//   - Persist after every mutating transition; in-memory state only moves
//     once the write succeeded.
//
// Notes:
//   - The permutation is never regenerated while a usable record exists,
//     so reloading cannot buy a friendlier shuffle.
//   - Rows and keyboard are derived from the stored guesses on demand.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

// Puzzle identifies one playable instance of a painting.
type Puzzle struct {
	ID     string // repository key of the instance
	Artist string // display name to guess
	Grid   int    // reveal grid is Grid×Grid tiles
	Tiles  []int  // optional hand-authored permutation
}

// Game is an opened puzzle instance bound to its repository.
type Game struct {
	puzzle  Puzzle
	pattern Pattern
	target  string
	state   *State
	repo    Repository
	draft   *Draft
}

// Open loads the instance record or creates it.
//
// A record that is missing, malformed or inconsistent with the puzzle is
// treated as absent: a fresh state is created and persisted immediately.
// A puzzle without guessable letters is created already won.
func Open(ctx context.Context, repo Repository, p Puzzle, rng *rand.Rand) (*Game, error) {
	if p.Grid < 1 {
		return nil, errors.New("game: grid must be at least 1")
	}
	pat := NewPattern(p.Artist)
	g := &Game{
		puzzle:  p,
		pattern: pat,
		target:  pat.Target(),
		repo:    repo,
		draft:   NewDraft(pat),
	}

	st, ok, err := repo.Load(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.ID, err)
	}
	if ok && !g.consistent(st) {
		log.Warn().Str("puzzle", p.ID).Msg("discarding inconsistent game record")
		ok = false
	}
	if !ok {
		st = g.fresh(rng)
		if err := repo.Save(ctx, p.ID, st); err != nil {
			return nil, fmt.Errorf("save %s: %w", p.ID, err)
		}
	}
	g.state = st
	return g, nil
}

// fresh builds the initial record for the puzzle.
func (g *Game) fresh(rng *rand.Rand) *State {
	n := g.TileCount()
	r := Reveal{Tiles: append([]int(nil), g.puzzle.Tiles...), Revealed: 1}
	if !ValidPermutation(r.Tiles, n) {
		r = NewReveal(n, rng)
	}
	st := &State{Tiles: r.Tiles, RevealedCount: r.Revealed, Status: StatusPlaying}
	if g.pattern.Slots() == 0 {
		st.Status = StatusWon
		st.RevealedCount = n
	}
	return st
}

// consistent checks a loaded record against the puzzle it is keyed by.
func (g *Game) consistent(st *State) bool {
	n := g.TileCount()
	if st == nil || !ValidPermutation(st.Tiles, n) {
		return false
	}
	if st.RevealedCount < 1 || st.RevealedCount > n {
		return false
	}
	switch st.Status {
	case StatusPlaying, StatusWon, StatusLost:
	default:
		return false
	}
	if len(st.Guesses) > MaxGuesses {
		return false
	}
	for _, guess := range st.Guesses {
		if len(guess) != len(g.target) {
			return false
		}
	}
	return true
}

// Type enters a letter into the current row. No-op unless playing.
func (g *Game) Type(r rune) bool {
	if g.state.Status != StatusPlaying {
		return false
	}
	return g.draft.Type(r)
}

// Backspace removes the last entered letter. No-op unless playing.
func (g *Game) Backspace() bool {
	if g.state.Status != StatusPlaying {
		return false
	}
	return g.draft.Backspace()
}

// SubmitDraft submits the current row. It is rejected (accepted=false, no
// state change) unless the game is playing and every slot is filled.
func (g *Game) SubmitDraft(ctx context.Context) (accepted bool, err error) {
	if g.state.Status != StatusPlaying || !g.draft.Complete() {
		return false, nil
	}
	accepted, err = g.apply(ctx, g.draft.Letters())
	if accepted {
		g.draft.Reset()
	}
	return accepted, err
}

// Submit types input into a fresh row and submits it. Non-letters in input
// are ignored, so "van Gogh" and "VANGOGH" are the same guess; too few or
// too many letters reject the guess.
func (g *Game) Submit(ctx context.Context, input string) (accepted bool, err error) {
	if g.state.Status != StatusPlaying {
		return false, nil
	}
	g.draft.Reset()
	for _, r := range input {
		if _, ok := normalizeLetter(r); !ok {
			continue
		}
		if !g.draft.Type(r) {
			g.draft.Reset()
			return false, nil
		}
	}
	accepted, err = g.SubmitDraft(ctx)
	if !accepted {
		g.draft.Reset()
	}
	return accepted, err
}

// apply evaluates guess and persists the resulting transition.
//
// State transitions:
//   - exact match            → won, every tile revealed.
//   - MaxGuesses-th miss     → lost, every tile revealed.
//   - any other miss         → one more tile revealed.
func (g *Game) apply(ctx context.Context, guess string) (bool, error) {
	if _, ok := Evaluate(guess, g.target); !ok {
		return false, nil
	}
	next := g.state.clone()
	next.Guesses = append(next.Guesses, guess)
	r := Reveal{Tiles: next.Tiles, Revealed: next.RevealedCount}
	switch {
	case guess == g.target:
		next.Status = StatusWon
		r.RevealAll()
	case len(next.Guesses) >= MaxGuesses:
		next.Status = StatusLost
		r.RevealAll()
	default:
		r.RevealOne()
	}
	next.RevealedCount = r.Revealed

	if err := g.repo.Save(ctx, g.puzzle.ID, next); err != nil {
		return false, fmt.Errorf("save %s: %w", g.puzzle.ID, err)
	}
	g.state = next
	return true, nil
}

// ID returns the puzzle-instance id.
func (g *Game) ID() string { return g.puzzle.ID }

// Artist returns the answer's display name.
func (g *Game) Artist() string { return g.puzzle.Artist }

// Pattern returns the puzzle template.
func (g *Game) Pattern() Pattern { return g.pattern }

// Status returns the current status.
func (g *Game) Status() Status { return g.state.Status }

// Grid returns the reveal grid dimension.
func (g *Game) Grid() int { return g.puzzle.Grid }

// TileCount is Grid².
func (g *Game) TileCount() int { return g.puzzle.Grid * g.puzzle.Grid }

// RevealedCount returns how many tiles are visible.
func (g *Game) RevealedCount() int { return g.state.RevealedCount }

// VisibleTiles returns the revealed tile indices in reveal order.
func (g *Game) VisibleTiles() []int {
	return Reveal{Tiles: g.state.Tiles, Revealed: g.state.RevealedCount}.Visible()
}

// GuessesUsed returns the number of accepted submissions.
func (g *Game) GuessesUsed() int { return len(g.state.Guesses) }

// GuessesLeft returns how many submissions remain while playing.
func (g *Game) GuessesLeft() int {
	if g.state.Status != StatusPlaying {
		return 0
	}
	return MaxGuesses - len(g.state.Guesses)
}

// Rows derives the submitted rows.
func (g *Game) Rows() []GuessRow { return BuildRows(g.pattern, g.state.Guesses) }

// Keyboard derives the keyboard state.
func (g *Game) Keyboard() Keyboard { return BuildKeyboard(g.state.Guesses, g.target) }

// Draft renders the current row over the full pattern.
func (g *Game) Draft() []string { return g.draft.Cells() }

// State returns a copy of the persisted record.
func (g *Game) State() State { return *g.state.clone() }
