// internal/httpserver/server.go
//
// HTTP server wiring for the Art Guess backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, JSON, CORS, timeouts,
//     panic recovery).
//   - Public endpoints: "/", "/health".
//   - Daily rounds (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /results/mine.
//   - Anonymous device cookie that keys a player's game state.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the user when a valid token is
//     present; routes still run for guests.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/crovisgrind/art-guessing-game/internal/auth"
	"github.com/crovisgrind/art-guessing-game/internal/config"
	"github.com/crovisgrind/art-guessing-game/internal/daily"
	"github.com/crovisgrind/art-guessing-game/internal/render"
	"github.com/crovisgrind/art-guessing-game/internal/session"
)

// Deps are the collaborators a Server routes to.
type Deps struct {
	Config   *config.Config
	Session  *session.Service
	Renderer *render.Renderer
	Results  *daily.Store
	Users    *auth.Users
	Tokens   *auth.Tokens
}

// Server bundles the router and its collaborators.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	sess    *session.Service
	render  *render.Renderer
	results *daily.Store
	users   *auth.Users
	tokens  *auth.Tokens
	authmw  *auth.Middleware
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     d.Config,
		sess:    d.Session,
		render:  d.Renderer,
		results: d.Results,
		users:   d.Users,
		tokens:  d.Tokens,
		authmw:  &auth.Middleware{Tokens: d.Tokens, Users: d.Users},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"art-guess","endpoints":["/health","/daily","/daily/{round}","POST /daily/{round}/guess","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Daily rounds: OPTIONAL AUTH (guests can play)
	s.mountDaily(s.r.With(s.authmw.Optional))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("dur", dur).
		Msg("request")
})

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the single configured CLIENT_ORIGIN.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ players ------------------------------------

// ensureAnonID returns an existing device cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cfg.AnonCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production() {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.AnonCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// player identifies the caller: the device always, the account if logged in.
func (s *Server) player(w http.ResponseWriter, r *http.Request) session.Player {
	dev := s.ensureAnonID(w, r)
	if me := auth.FromContext(r.Context()); me != nil {
		return session.Player{DeviceID: dev, UserID: me.ID, Registered: true}
	}
	return session.Player{DeviceID: dev, UserID: dev}
}

// ------------------------------ responses ----------------------------------

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes and error codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNoRound):
		http.Error(w, `{"error":"no_such_round"}`, http.StatusNotFound)
	case errors.Is(err, session.ErrNotFinished):
		http.Error(w, `{"error":"round_in_play"}`, http.StatusConflict)
	case errors.Is(err, render.ErrNoArtwork):
		hlog.FromRequest(r).Warn().Err(err).Msg("artwork")
		http.Error(w, `{"error":"artwork_unavailable"}`, http.StatusNotFound)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
	}
}
