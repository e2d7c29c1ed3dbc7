package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/crovisgrind/art-guessing-game/assets"
	"github.com/crovisgrind/art-guessing-game/internal/db"
	"github.com/crovisgrind/art-guessing-game/internal/game"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": NewSQLite(conn),
	}
}

func TestBackendGetSet(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
			}
			if err := b.Set(ctx, "k", []byte("one")); err != nil {
				t.Fatal(err)
			}
			if err := b.Set(ctx, "k", []byte("two")); err != nil {
				t.Fatal(err)
			}
			v, err := b.Get(ctx, "k")
			if err != nil || string(v) != "two" {
				t.Fatalf("Get = %q, %v", v, err)
			}
		})
	}
}

func TestRecordsRoundTripState(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRecords(b)
			if _, ok, err := r.Load(ctx, "p1"); ok || err != nil {
				t.Fatalf("Load(missing) = %v, %v", ok, err)
			}
			want := &game.State{Tiles: []int{2, 0, 3, 1}, RevealedCount: 2, Status: game.StatusPlaying, Guesses: []string{"ABCDEF"}}
			if err := r.Save(ctx, "p1", want); err != nil {
				t.Fatal(err)
			}
			got, ok, err := r.Load(ctx, "p1")
			if err != nil || !ok || !reflect.DeepEqual(got, want) {
				t.Fatalf("Load = %+v, %v, %v", got, ok, err)
			}
		})
	}
}

func TestRecordsMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	_ = b.Set(ctx, statePrefix+"p1", []byte("{not json"))
	_ = b.Set(ctx, scorePrefix+"s1", []byte(`{"total":"many"}`))
	r := NewRecords(b)
	if st, ok, err := r.Load(ctx, "p1"); ok || err != nil || st != nil {
		t.Fatalf("Load = %v, %v, %v", st, ok, err)
	}
	if sc, ok, err := r.LoadScore(ctx, "s1"); ok || err != nil || sc != nil {
		t.Fatalf("LoadScore = %v, %v, %v", sc, ok, err)
	}
}

func TestRecordsScoresAreSeparateFromState(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(NewMemory())
	sc := game.NewSessionScore(2)
	sc.RecordWin(1, 100, 2)
	if err := r.SaveScore(ctx, "same-id", sc); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := r.Load(ctx, "same-id"); ok {
		t.Fatal("score visible as game state")
	}
	got, ok, err := r.LoadScore(ctx, "same-id")
	if err != nil || !ok || got.Total != 90 || got.PerRound[0] != nil || *got.PerRound[1] != 90 {
		t.Fatalf("LoadScore = %+v, %v, %v", got, ok, err)
	}
}

type failing struct{}

func (failing) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io") }
func (failing) Set(context.Context, string, []byte) error   { return errors.New("io") }

func TestRecordsPropagatesBackendErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(failing{})
	if _, _, err := r.Load(ctx, "x"); err == nil {
		t.Fatal("Load swallowed backend error")
	}
	if err := r.Save(ctx, "x", &game.State{}); err == nil {
		t.Fatal("Save swallowed backend error")
	}
}
