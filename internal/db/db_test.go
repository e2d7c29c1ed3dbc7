package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/crovisgrind/art-guessing-game/assets"
)

func TestMigrateIsIdempotent(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(conn, assets.Migrations()); err != nil {
			t.Fatalf("Migrate run %d: %v", i, err)
		}
	}
	var n int
	if err := conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("recorded %d migrations, want 1", n)
	}
	for _, table := range []string{"records", "users", "daily_results"} {
		if _, err := conn.Exec(`SELECT 1 FROM ` + table + ` LIMIT 1`); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateAppliesInOrderAndStopsOnError(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	fsys := fstest.MapFS{
		"002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('b');`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"003_c.sql": {Data: []byte(`INSERT INTO missing VALUES (1);`)},
	}
	if err := Migrate(conn, fsys); err == nil {
		t.Fatal("expected error from 003_c.sql")
	}
	var v string
	if err := conn.QueryRow(`SELECT v FROM t`).Scan(&v); err != nil || v != "b" {
		t.Fatalf("v = %q, err = %v", v, err)
	}
	var n int
	_ = conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n)
	if n != 2 {
		t.Fatalf("recorded %d migrations, want 2", n)
	}
}
