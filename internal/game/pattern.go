// internal/game/pattern.go
//
// Pattern building and letter normalization.
//
// An artist name such as "Leonardo da Vinci" or "Jean-Léon Gérôme" becomes a
// fixed-length template: every character whose normalized form is a single
// ASCII letter is a guessable slot, everything else (spaces, hyphens,
// apostrophes, ...) is kept verbatim as an immutable literal.

package game

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes accents, strips combining marks, drops everything that
// is not an ASCII letter and uppercases the rest.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeLetter returns the single uppercase letter r normalizes to.
// ok is false when r normalizes to nothing or to more than one letter.
func normalizeLetter(r rune) (byte, bool) {
	n := Normalize(string(r))
	if len(n) != 1 {
		return 0, false
	}
	return n[0], true
}

// Cell is one position of a Pattern. Letter is set for guessable slots,
// Literal for immutable characters.
type Cell struct {
	Literal rune
	Letter  byte
}

// Fixed reports whether the cell is an immutable literal.
func (c Cell) Fixed() bool { return c.Letter == 0 }

// Pattern is the per-puzzle template derived from the artist name.
type Pattern []Cell

// NewPattern builds the template for an artist display name.
func NewPattern(artist string) Pattern {
	p := make(Pattern, 0, len(artist))
	for _, r := range artist {
		if l, ok := normalizeLetter(r); ok {
			p = append(p, Cell{Letter: l})
			continue
		}
		p = append(p, Cell{Literal: r})
	}
	return p
}

// Slots counts guessable positions.
func (p Pattern) Slots() int {
	n := 0
	for _, c := range p {
		if !c.Fixed() {
			n++
		}
	}
	return n
}

// Target is the normalized answer, one letter per slot.
func (p Pattern) Target() string {
	b := make([]byte, 0, len(p))
	for _, c := range p {
		if !c.Fixed() {
			b = append(b, c.Letter)
		}
	}
	return string(b)
}

// MarshalJSON renders slots as null and literals as one-character strings,
// so clients never see the answer letters.
func (p Pattern) MarshalJSON() ([]byte, error) {
	out := make([]*string, len(p))
	for i, c := range p {
		if c.Fixed() {
			s := string(c.Literal)
			out[i] = &s
		}
	}
	return json.Marshal(out)
}

// Layout spreads slot letters over the pattern, filling literals verbatim.
// Missing letters are rendered as empty strings.
func (p Pattern) Layout(letters string) []string {
	out := make([]string, len(p))
	k := 0
	for i, c := range p {
		if c.Fixed() {
			out[i] = string(c.Literal)
			continue
		}
		if k < len(letters) {
			out[i] = letters[k : k+1]
		}
		k++
	}
	return out
}
