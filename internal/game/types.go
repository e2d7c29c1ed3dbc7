// internal/game/types.go
//
// Core type definitions for the Art Guess game engine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent/skip).
//   - Status:  lifecycle of a single puzzle instance (playing/won/lost).
//   - State:   the persisted record of one puzzle instance.
//   - GuessRow: one submitted guess projected onto the full pattern.

package game

import "context"

// MaxGuesses is the number of submissions allowed before a puzzle is lost.
const MaxGuesses = 6

// Verdict represents the evaluation result for a single pattern position.
// Possible values:
//   - "correct": letter is in the answer at this position.
//   - "present": letter exists elsewhere in the answer.
//   - "absent":  letter is not (or no longer) available in the answer.
//   - "skip":    position holds an immutable literal (space, hyphen, ...).
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
	VerdictSkip    Verdict = "skip"
)

// rank orders verdicts for the keyboard's best-so-far rule.
func (v Verdict) rank() int {
	switch v {
	case VerdictCorrect:
		return 3
	case VerdictPresent:
		return 2
	case VerdictAbsent:
		return 1
	default:
		return 0
	}
}

// Status is the coarse state of a puzzle instance.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// State is the durable record of one puzzle instance.
// Tiles is generated once and never regenerated while the record exists.
type State struct {
	Tiles         []int    `json:"tiles"`             // reveal permutation of [0, grid²)
	RevealedCount int      `json:"revealedCount"`     // 1..len(Tiles)
	Status        Status   `json:"status"`            // playing | won | lost
	Guesses       []string `json:"guesses,omitempty"` // normalized letters, one per submission
}

// clone returns a deep copy so transitions can be staged before persisting.
func (s *State) clone() *State {
	c := *s
	c.Tiles = append([]int(nil), s.Tiles...)
	c.Guesses = append([]string(nil), s.Guesses...)
	return &c
}

// GuessRow is one submitted guess laid out over the full pattern.
// Letters holds the typed letter for slots and the literal for fixed cells.
type GuessRow struct {
	Letters  []string  `json:"letters"`
	Verdicts []Verdict `json:"verdicts"`
}

// Repository persists puzzle state keyed by puzzle-instance id.
// Load reports ok=false when no usable record exists.
type Repository interface {
	Load(ctx context.Context, id string) (st *State, ok bool, err error)
	Save(ctx context.Context, id string, st *State) error
}
