package daily

import (
	"reflect"
	"testing"
	"time"
)

func TestDayIndex(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cases := []struct {
		name string
		now  time.Time
		loc  *time.Location
		want int
	}{
		{"epoch", Epoch, time.UTC, 0},
		{"end of first day", time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC), time.UTC, 0},
		{"next day", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.UTC, 1},
		{"leap year", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), time.UTC, 366},
		{"before epoch", time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), time.UTC, -1},
		{"local date ahead of UTC", time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), paris, 1},
		{"across DST change", time.Date(2024, 3, 31, 12, 0, 0, 0, paris), paris, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DayIndex(tc.now, Epoch, tc.loc); got != tc.want {
				t.Fatalf("DayIndex = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	now := time.Date(2024, 5, 6, 23, 0, 0, 0, time.UTC)
	if got := DateKey(now, time.UTC); got != "2024-05-06" {
		t.Fatalf("DateKey = %s", got)
	}
	tokyo := time.FixedZone("JST", 9*3600)
	if got := DateKey(now, tokyo); got != "2024-05-07" {
		t.Fatalf("DateKey(JST) = %s", got)
	}
}

func TestSelect(t *testing.T) {
	entries := []string{"a", "b", "c", "d", "e"}
	for day, want := range map[int]string{0: "a", 4: "e", 5: "a", 12: "c", -1: "e"} {
		if got := Select(entries, day); got != want {
			t.Errorf("Select(day %d) = %s, want %s", day, got, want)
		}
	}
}

func TestSelectRounds(t *testing.T) {
	entries := []string{"a", "b", "c", "d", "e", "f", "g"}
	if got := SelectRounds(entries, 0, 3); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("day 0 = %v", got)
	}
	if got := SelectRounds(entries, 2, 3); !reflect.DeepEqual(got, []string{"g", "a", "b"}) {
		t.Fatalf("day 2 = %v", got)
	}
	for day := -3; day < 30; day++ {
		if single, multi := Select(entries, day), SelectRounds(entries, day, 1)[0]; single != multi {
			t.Fatalf("day %d: one round %s != single %s", day, multi, single)
		}
	}
}

func TestRoundIndexesAreDistinctWhenCatalogIsLarger(t *testing.T) {
	for day := 0; day < 100; day++ {
		idx := RoundIndexes(day, 3, 12)
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[0] == idx[2] {
			t.Fatalf("day %d: repeated indexes %v", day, idx)
		}
	}
}
