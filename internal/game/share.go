package game

import "strings"

// ShareHeader opens every shared summary.
const ShareHeader = "🎨 ART GUESS"

var shareGlyphs = map[Verdict]string{
	VerdictCorrect: "🟩",
	VerdictPresent: "🟨",
	VerdictAbsent:  "⬛",
}

// ShareRow renders one row as colored squares; skip positions are omitted.
func ShareRow(row GuessRow) string {
	var b strings.Builder
	for _, v := range row.Verdicts {
		b.WriteString(shareGlyphs[v])
	}
	return b.String()
}

// Share formats the shareable summary of a finished board.
func Share(rows []GuessRow, url string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = ShareRow(r)
	}
	out := ShareHeader + "\n\n" + strings.Join(lines, "\n")
	if url != "" {
		out += "\n\n" + url
	}
	return out
}
