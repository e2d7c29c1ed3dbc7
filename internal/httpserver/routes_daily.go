// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily rounds, under /daily:
//   - GET  /daily                   → today's rounds (answers hidden while playing)
//   - GET  /daily/score             → today's session score
//   - GET  /daily/leaderboard       → top players of today (or ?date=)
//   - GET  /daily/{round}           → full board of one round
//   - POST /daily/{round}/guess     → submit a guess
//   - GET  /daily/{round}/image.png → reveal canvas
//   - GET  /daily/{round}/share     → share text of a finished round
//
// A player's boards are keyed by the device cookie, so reloading or
// logging in resumes the same shuffle.

package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleToday)
		r.Get("/score", s.handleScore)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Route("/{round}", func(r chi.Router) {
			r.Get("/", s.handleBoard)
			r.Post("/guess", s.handleGuess)
			r.Get("/image.png", s.handleImage)
			r.Get("/share", s.handleShare)
		})
	})
}

// roundParam parses {round}; ok is false after a 404 was written.
func roundParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		http.Error(w, `{"error":"no_such_round"}`, http.StatusNotFound)
		return 0, false
	}
	return n, true
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	d, err := s.sess.Today(r.Context(), s.player(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	round, ok := roundParam(w, r)
	if !ok {
		return
	}
	b, err := s.sess.Play(r.Context(), s.player(w, r), round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// guessReq/Res payloads for POST /daily/{round}/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

type guessRes struct {
	Accepted bool `json:"accepted"`
	Board    any  `json:"board"`
}

// handleGuess submits a guess. Rejected input (wrong letter count, finished
// round) is not an HTTP error: accepted is false and the board unchanged.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	round, ok := roundParam(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	b, accepted, err := s.sess.Guess(r.Context(), s.player(w, r), round, req.Guess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Accepted: accepted, Board: b})
}

// handleImage renders the reveal canvas. The PNG is encoded before any
// byte is written so failures still produce a JSON error.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	round, ok := roundParam(w, r)
	if !ok {
		return
	}
	c, err := s.sess.Artwork(r.Context(), s.player(w, r), round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := s.render.WritePNG(r.Context(), &buf, c.Image, c.Grid, c.Tiles); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	round, ok := roundParam(w, r)
	if !ok {
		return
	}
	text, err := s.sess.Share(r.Context(), s.player(w, r), round, s.cfg.ShareURL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	date, sc, err := s.sess.Score(r.Context(), s.player(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "score": sc})
}

// handleLeaderboard returns the leaderboard for ?date= (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.sess.Date()
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.results.Leaderboard(r.Context(), date, min(limit, 100))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "top": rows})
}
