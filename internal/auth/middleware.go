package auth

import (
	"context"
	"net/http"
)

type ctxUserKey struct{}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, id)
}

// FromContext returns the request's identity, or nil for guests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxUserKey{}).(*Identity)
	return id
}

// Middleware resolves tokens against the user table.
type Middleware struct {
	Tokens *Tokens
	Users  *Users
}

// resolve returns the identity of a valid token whose user still exists.
func (m *Middleware) resolve(r *http.Request) *Identity {
	tok := m.Tokens.FromRequest(r)
	if tok == "" {
		return nil
	}
	id, err := m.Tokens.Parse(tok)
	if err != nil {
		return nil
	}
	u, err := m.Users.FindByID(r.Context(), id.ID)
	if err != nil {
		return nil
	}
	return &Identity{ID: u.ID, Username: u.Username}
}

// Optional decorates requests with the identity when a valid token is
// present. It never rejects; guests pass through.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := m.resolve(r); id != nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid token with 401.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Tokens.FromRequest(r) == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		id := m.resolve(r)
		if id == nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
