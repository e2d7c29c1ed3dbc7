// internal/game/evaluate.go
//
// Guess evaluation, pattern projection and the on-screen keyboard.

package game

// Evaluate scores a normalized guess against the normalized target using the
// classic two-pass Wordle algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (unmatched) target letters.
//
// Pass 2:
//   - For each non-correct guess letter, left to right: if an unmatched
//     occurrence remains, mark present and consume it; otherwise absent.
//
// ok is false (and no verdicts are produced) unless len(guess) == len(target).
func Evaluate(guess, target string) (verdicts []Verdict, ok bool) {
	if len(guess) != len(target) {
		return nil, false
	}
	n := len(guess)
	res := make([]Verdict, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = VerdictCorrect
		} else if j := idx(target[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == VerdictCorrect {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = VerdictPresent
			counts[j]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res, true
}

// idx maps an uppercase ASCII letter to 0..25, anything else to -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// Project re-interleaves slot verdicts into the full pattern, emitting skip
// for every literal cell.
func Project(p Pattern, verdicts []Verdict) []Verdict {
	out := make([]Verdict, len(p))
	k := 0
	for i, c := range p {
		if c.Fixed() || k >= len(verdicts) {
			out[i] = VerdictSkip
			continue
		}
		out[i] = verdicts[k]
		k++
	}
	return out
}

// Keyboard maps an uppercase letter to the best verdict seen for it.
type Keyboard map[string]Verdict

// Apply merges one guess into the keyboard. A key only ever moves up
// (absent < present < correct), so applying the same guess twice is a no-op.
func (k Keyboard) Apply(guess string, verdicts []Verdict) {
	for i := 0; i < len(guess) && i < len(verdicts); i++ {
		key := guess[i : i+1]
		if verdicts[i].rank() > k[key].rank() {
			k[key] = verdicts[i]
		}
	}
}

// BuildKeyboard derives the keyboard from every submitted guess.
func BuildKeyboard(guesses []string, target string) Keyboard {
	kb := Keyboard{}
	for _, g := range guesses {
		if v, ok := Evaluate(g, target); ok {
			kb.Apply(g, v)
		}
	}
	return kb
}

// BuildRows derives the board rows from every submitted guess.
func BuildRows(p Pattern, guesses []string) []GuessRow {
	target := p.Target()
	rows := make([]GuessRow, 0, len(guesses))
	for _, g := range guesses {
		v, ok := Evaluate(g, target)
		if !ok {
			continue
		}
		rows = append(rows, GuessRow{Letters: p.Layout(g), Verdicts: Project(p, v)})
	}
	return rows
}
