package game

// Draft is the editable current row. Literal cells are pre-filled and are
// never touched by Type or Backspace.
type Draft struct {
	pattern Pattern
	cells   []byte // 0 = empty slot
}

// NewDraft returns an empty row for p.
func NewDraft(p Pattern) *Draft {
	return &Draft{pattern: p, cells: make([]byte, len(p))}
}

// Type places the letter r normalizes to into the first empty slot.
// Returns false when r is not a letter or the row is full.
func (d *Draft) Type(r rune) bool {
	l, ok := normalizeLetter(r)
	if !ok {
		return false
	}
	for i, c := range d.pattern {
		if !c.Fixed() && d.cells[i] == 0 {
			d.cells[i] = l
			return true
		}
	}
	return false
}

// Backspace clears the last filled slot.
func (d *Draft) Backspace() bool {
	for i := len(d.pattern) - 1; i >= 0; i-- {
		if !d.pattern[i].Fixed() && d.cells[i] != 0 {
			d.cells[i] = 0
			return true
		}
	}
	return false
}

// Letters returns the filled slot letters in order.
func (d *Draft) Letters() string {
	b := make([]byte, 0, len(d.cells))
	for i, c := range d.pattern {
		if !c.Fixed() && d.cells[i] != 0 {
			b = append(b, d.cells[i])
		}
	}
	return string(b)
}

// Complete reports whether every slot is filled.
func (d *Draft) Complete() bool { return len(d.Letters()) == d.pattern.Slots() }

// Cells renders the row over the full pattern.
func (d *Draft) Cells() []string { return d.pattern.Layout(d.Letters()) }

// Reset empties every slot.
func (d *Draft) Reset() {
	for i := range d.cells {
		d.cells[i] = 0
	}
}
