// internal/store/records.go
//
// Typed records over a Backend.
//
// Records implements game.Repository (puzzle-instance state) and
// game.ScoreRepository (per-day session scores) with a JSON codec. Game
// state and scores live under separate key prefixes so they are persisted
// independently.
//
// Error handling:
//   - Missing keys load as absent.
//   - Undecodable records load as absent and are logged; the caller then
//     starts fresh instead of failing.
//   - Backend failures are returned wrapped.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/crovisgrind/art-guessing-game/internal/game"
)

const (
	statePrefix = "art-guess/"
	scorePrefix = "art-guess-score/"
)

// Records is the JSON repository used by the game and session layers.
type Records struct {
	backend Backend
}

// NewRecords constructs Records over b.
func NewRecords(b Backend) *Records { return &Records{backend: b} }

// Load implements game.Repository.
func (r *Records) Load(ctx context.Context, id string) (*game.State, bool, error) {
	var st game.State
	ok, err := r.get(ctx, statePrefix+id, &st)
	if !ok || err != nil {
		return nil, false, err
	}
	return &st, true, nil
}

// Save implements game.Repository.
func (r *Records) Save(ctx context.Context, id string, st *game.State) error {
	return r.set(ctx, statePrefix+id, st)
}

// LoadScore implements game.ScoreRepository.
func (r *Records) LoadScore(ctx context.Context, id string) (*game.SessionScore, bool, error) {
	var sc game.SessionScore
	ok, err := r.get(ctx, scorePrefix+id, &sc)
	if !ok || err != nil {
		return nil, false, err
	}
	return &sc, true, nil
}

// SaveScore implements game.ScoreRepository.
func (r *Records) SaveScore(ctx context.Context, id string, sc *game.SessionScore) error {
	return r.set(ctx, scorePrefix+id, sc)
}

func (r *Records) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := r.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed record")
		return false, nil
	}
	return true, nil
}

func (r *Records) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
