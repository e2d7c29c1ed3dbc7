package game

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	cases := []struct{ base, used, want int }{
		{100, 1, 100},
		{100, 3, 80},
		{100, 10, 10},
		{200, 6, 150},
		{15, 2, 10},
	}
	for _, tc := range cases {
		if got := Score(tc.base, tc.used); got != tc.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tc.base, tc.used, got, tc.want)
		}
	}
}

func TestSessionScoreIsIdempotent(t *testing.T) {
	s := NewSessionScore(3)
	if !s.RecordWin(0, 100, 3) {
		t.Fatal("first win not recorded")
	}
	if s.RecordWin(0, 100, 1) || s.RecordLoss(0) {
		t.Fatal("round 0 recorded twice")
	}
	if s.Total != 80 || *s.PerRound[0] != 80 {
		t.Fatalf("total=%d round0=%d", s.Total, *s.PerRound[0])
	}

	if !s.RecordLoss(1) || s.RecordWin(1, 200, 1) {
		t.Fatal("loss then win on round 1 misbehaved")
	}
	if s.Total != 80 || *s.PerRound[1] != 0 {
		t.Fatalf("total=%d round1=%d", s.Total, *s.PerRound[1])
	}
	if s.Recorded(2) || s.RecordWin(3, 100, 1) || s.RecordLoss(-1) {
		t.Fatal("out-of-range or unset round misbehaved")
	}
}

func TestShare(t *testing.T) {
	p := NewPattern("van Gogh")
	rows := BuildRows(p, []string{"VXNGOGX", "VANGOGH"})
	got := Share(rows, "https://example.test/")
	want := ShareHeader + "\n\n🟩⬛🟩🟩🟩🟩⬛\n🟩🟩🟩🟩🟩🟩🟩\n\nhttps://example.test/"
	if got != want {
		t.Fatalf("Share =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(ShareRow(rows[0]), " ") {
		t.Fatal("skip rendered as a glyph")
	}
}
