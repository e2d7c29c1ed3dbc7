package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crovisgrind/art-guessing-game/assets"
	"github.com/crovisgrind/art-guessing-game/internal/db"
)

func newUsers(t *testing.T) *Users {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	u := NewUsers(conn)
	u.cost = bcrypt.MinCost
	return u
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	u, err := users.Create(ctx, "  Renoir_A ", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "Renoir_A" || u.ID == "" {
		t.Fatalf("user = %+v", u)
	}
	if _, err := users.Create(ctx, "renoir_a", "another pass"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v", err)
	}

	got, err := users.Authenticate(ctx, "RENOIR_A", "correct horse")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate = %+v, %v", got, err)
	}
	for _, tc := range []struct{ name, pw string }{
		{"renoir_a", "wrong password"},
		{"nobody", "correct horse"},
	} {
		if _, err := users.Authenticate(ctx, tc.name, tc.pw); !errors.Is(err, ErrBadCredentials) {
			t.Errorf("Authenticate(%q) err = %v", tc.name, err)
		}
	}
}

func TestCreateValidates(t *testing.T) {
	users := newUsers(t)
	for _, tc := range []struct{ name, pw string }{
		{"ab", "longenough"},
		{"bad name", "longenough"},
		{"good_name", "short"},
	} {
		var invalid *InvalidSignupError
		if _, err := users.Create(context.Background(), tc.name, tc.pw); !errors.As(err, &invalid) {
			t.Errorf("Create(%q, %q) err = %v", tc.name, tc.pw, err)
		}
	}
}

func TestBumpStats(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	u, err := users.Create(ctx, "painter", "brushes123")
	if err != nil {
		t.Fatal(err)
	}
	for _, won := range []bool{true, true, false, true} {
		if err := users.BumpStats(ctx, u.ID, won); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := users.FindByID(ctx, u.ID)
	if got.GamesPlayed != 4 || got.Wins != 3 || got.Streak != 1 {
		t.Fatalf("stats = %+v", got)
	}
	if err := users.BumpStats(ctx, "missing", true); !errors.Is(err, ErrNoUser) {
		t.Fatalf("missing user err = %v", err)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tok := &Tokens{Secret: []byte("s3cret"), TTL: time.Hour, CookieName: "art_token"}
	ss, exp, err := tok.Sign("u1", "monet")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("exp = %v", exp)
	}
	id, err := tok.Parse(ss)
	if err != nil || id.ID != "u1" || id.Username != "monet" {
		t.Fatalf("Parse = %+v, %v", id, err)
	}

	other := &Tokens{Secret: []byte("other"), TTL: time.Hour}
	if _, err := other.Parse(ss); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
	expired := &Tokens{Secret: []byte("s3cret"), TTL: -time.Hour}
	old, _, _ := expired.Sign("u1", "monet")
	if _, err := tok.Parse(old); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestFromRequest(t *testing.T) {
	tok := &Tokens{CookieName: "art_token"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	r.AddCookie(&http.Cookie{Name: "art_token", Value: "cookie"})
	if got := tok.FromRequest(r); got != "abc" {
		t.Fatalf("bearer = %q", got)
	}
	r.Header.Del("Authorization")
	if got := tok.FromRequest(r); got != "cookie" {
		t.Fatalf("cookie = %q", got)
	}
}

func TestMiddleware(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	u, _ := users.Create(ctx, "vermeer", "pearl-earring")
	tokens := &Tokens{Secret: []byte("k"), TTL: time.Hour, CookieName: "art_token"}
	valid, _, _ := tokens.Sign(u.ID, u.Username)
	ghost, _, _ := tokens.Sign("ghost", "ghost")
	m := &Middleware{Tokens: tokens, Users: users}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := FromContext(r.Context()); id != nil {
			_, _ = w.Write([]byte(id.Username))
		}
	})

	tests := []struct {
		name     string
		mw       func(http.Handler) http.Handler
		token    string
		wantCode int
		wantBody string
	}{
		{"optional guest", m.Optional, "", 200, ""},
		{"optional user", m.Optional, valid, 200, "vermeer"},
		{"optional deleted user", m.Optional, ghost, 200, ""},
		{"require guest", m.Require, "", 401, `{"error":"Unauthorized"}` + "\n"},
		{"require garbage", m.Require, "garbage", 401, `{"error":"Invalid token"}` + "\n"},
		{"require user", m.Require, valid, 200, "vermeer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			tt.mw(echo).ServeHTTP(w, r)
			if w.Code != tt.wantCode || w.Body.String() != tt.wantBody {
				t.Fatalf("got %d %q, want %d %q", w.Code, w.Body.String(), tt.wantCode, tt.wantBody)
			}
		})
	}
}
