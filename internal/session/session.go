// internal/session/session.go
//
// Per-player orchestration of the daily rounds.
// Responsibilities:
//   - Resolve today's date, day index and per-round paintings.
//   - Open (or create once) the persisted game of each round.
//   - Apply guesses and, on the first terminal transition of a round,
//     record it into the day's SessionScore, the results table and the
//     player's account stats.
//   - Build the board views consumed by the HTTP layer.
//
// Notes:
//   - Game state is keyed by device so a reload, or logging in, never
//     grants a fresh shuffle. Results and stats are keyed by account when
//     the player is logged in.
//   - Every transition runs under one mutex: one writer at a time.

package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crovisgrind/art-guessing-game/internal/catalog"
	"github.com/crovisgrind/art-guessing-game/internal/daily"
	"github.com/crovisgrind/art-guessing-game/internal/game"
)

var (
	// ErrNoRound is returned for a round index outside today's rounds.
	ErrNoRound = errors.New("session: no such round")
	// ErrNotFinished is returned when a finished board is required.
	ErrNotFinished = errors.New("session: round still in play")
)

// Player identifies who is playing.
type Player struct {
	DeviceID   string // keys persisted game state and session score
	UserID     string // owner of results; equals DeviceID for guests
	Registered bool   // true when UserID is an account
}

// ResultRecorder stores finished rounds; inserted is false for duplicates.
type ResultRecorder interface {
	InsertResult(ctx context.Context, r daily.Result) (inserted bool, err error)
}

// StatsRecorder updates account counters for a finished round.
type StatsRecorder interface {
	BumpStats(ctx context.Context, userID string, won bool) error
}

// Options configures a Service. Zero values pick production defaults.
type Options struct {
	Epoch    time.Time
	Location *time.Location
	Now      func() time.Time
	Rand     *rand.Rand
	Results  ResultRecorder
	Stats    StatsRecorder
}

// Service binds the catalog, the schedule and the repositories.
type Service struct {
	cat     *catalog.Catalog
	repo    game.Repository
	scores  game.ScoreRepository
	results ResultRecorder
	stats   StatsRecorder
	epoch   time.Time
	loc     *time.Location
	now     func() time.Time

	mu  sync.Mutex // guards rng and serializes transitions
	rng *rand.Rand
}

// New constructs a Service.
func New(cat *catalog.Catalog, repo game.Repository, scores game.ScoreRepository, opts Options) *Service {
	s := &Service{
		cat:     cat,
		repo:    repo,
		scores:  scores,
		results: opts.Results,
		stats:   opts.Stats,
		epoch:   opts.Epoch,
		loc:     opts.Location,
		now:     opts.Now,
		rng:     opts.Rand,
	}
	if s.epoch.IsZero() {
		s.epoch = daily.Epoch
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = game.NewRand()
	}
	return s
}

// Rounds returns the number of rounds per day.
func (s *Service) Rounds() int { return len(s.cat.Rounds) }

// Date returns today's date key.
func (s *Service) Date() string { return daily.DateKey(s.now(), s.loc) }

// slot is one resolved round of one day.
type slot struct {
	date     string
	index    int
	round    catalog.Round
	painting catalog.Painting
	grid     int
}

// resolve picks the painting of round for the current calendar day.
func (s *Service) resolve(round int) (slot, error) {
	if round < 0 || round >= len(s.cat.Rounds) {
		return slot{}, ErrNoRound
	}
	now := s.now()
	day := daily.DayIndex(now, s.epoch, s.loc)
	p := daily.SelectRounds(s.cat.Paintings, day, len(s.cat.Rounds))[round]
	return slot{
		date:     daily.DateKey(now, s.loc),
		index:    round,
		round:    s.cat.Rounds[round],
		painting: p,
		grid:     s.cat.GridFor(p, round),
	}, nil
}

// instanceID keys one device's play of one painting on one day and round.
func instanceID(p Player, sl slot) string {
	return p.DeviceID + "/" + sl.date + "/" + strconv.Itoa(sl.index) + "/" + sl.painting.ID
}

// scoreID keys one device's session score of one day.
func scoreID(p Player, date string) string { return p.DeviceID + "/" + date }

// open loads or creates the round's game. Caller holds s.mu.
func (s *Service) open(ctx context.Context, p Player, round int) (*game.Game, slot, error) {
	sl, err := s.resolve(round)
	if err != nil {
		return nil, slot{}, err
	}
	g, err := game.Open(ctx, s.repo, game.Puzzle{
		ID:     instanceID(p, sl),
		Artist: sl.painting.Artist,
		Grid:   sl.grid,
		Tiles:  catalog.TilesFor(sl.painting, sl.grid),
	}, s.rng)
	if err != nil {
		return nil, slot{}, err
	}
	if g.Status().Terminal() {
		if err := s.finish(ctx, p, sl, g); err != nil {
			return nil, slot{}, err
		}
	}
	return g, sl, nil
}

// finish records a terminal round once. Score persistence failures are
// returned; results and stats are best effort.
func (s *Service) finish(ctx context.Context, p Player, sl slot, g *game.Game) error {
	id := scoreID(p, sl.date)
	sc, ok, err := s.scores.LoadScore(ctx, id)
	if err != nil {
		return fmt.Errorf("load score: %w", err)
	}
	if !ok {
		sc = game.NewSessionScore(len(s.cat.Rounds))
	}
	for len(sc.PerRound) < len(s.cat.Rounds) {
		sc.PerRound = append(sc.PerRound, nil)
	}

	won := g.Status() == game.StatusWon
	used := max(g.GuessesUsed(), 1)
	var changed bool
	if won {
		changed = sc.RecordWin(sl.index, sl.round.Points, used)
	} else {
		changed = sc.RecordLoss(sl.index)
	}
	if !changed {
		return nil
	}
	if err := s.scores.SaveScore(ctx, id, sc); err != nil {
		return fmt.Errorf("save score: %w", err)
	}

	points := 0
	if pts := sc.PerRound[sl.index]; pts != nil {
		points = *pts
	}
	log.Info().
		Str("user", p.UserID).
		Str("date", sl.date).
		Int("round", sl.index).
		Str("puzzle", sl.painting.ID).
		Bool("won", won).
		Int("points", points).
		Msg("round finished")

	if s.results == nil {
		return nil
	}
	inserted, err := s.results.InsertResult(ctx, daily.Result{
		UserID:   p.UserID,
		Date:     sl.date,
		Round:    sl.index,
		PuzzleID: sl.painting.ID,
		Guesses:  g.GuessesUsed(),
		Points:   points,
		Won:      won,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", p.UserID).Msg("insert daily result")
		return nil
	}
	if inserted && p.Registered && s.stats != nil {
		if err := s.stats.BumpStats(ctx, p.UserID, won); err != nil {
			log.Warn().Err(err).Str("user", p.UserID).Msg("bump stats")
		}
	}
	return nil
}

// Today summarizes every round of the current day.
func (s *Service) Today(ctx context.Context, p Player) (*Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &Day{Rounds: make([]Summary, 0, len(s.cat.Rounds))}
	for r := range s.cat.Rounds {
		g, sl, err := s.open(ctx, p, r)
		if err != nil {
			return nil, err
		}
		d.Date = sl.date
		d.Rounds = append(d.Rounds, summarize(g, sl))
	}
	d.Day = daily.DayIndex(s.now(), s.epoch, s.loc)
	return d, nil
}

// Play opens (creating on first visit) one round and returns its board.
func (s *Service) Play(ctx context.Context, p Player, round int) (*Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, sl, err := s.open(ctx, p, round)
	if err != nil {
		return nil, err
	}
	return boardOf(g, sl), nil
}

// Guess submits input to one round. accepted is false when the input was
// rejected (wrong letter count, round already finished); the board is
// returned unchanged in that case.
func (s *Service) Guess(ctx context.Context, p Player, round int, input string) (b *Board, accepted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, sl, err := s.open(ctx, p, round)
	if err != nil {
		return nil, false, err
	}
	accepted, err = g.Submit(ctx, input)
	if err != nil {
		return nil, false, err
	}
	if accepted && g.Status().Terminal() {
		if err := s.finish(ctx, p, sl, g); err != nil {
			return nil, false, err
		}
	}
	return boardOf(g, sl), accepted, nil
}

// Score returns the session score of the current day.
func (s *Service) Score(ctx context.Context, p Player) (date string, sc *game.SessionScore, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date = daily.DateKey(s.now(), s.loc)
	sc, ok, err := s.scores.LoadScore(ctx, scoreID(p, date))
	if err != nil {
		return date, nil, err
	}
	if !ok {
		sc = game.NewSessionScore(len(s.cat.Rounds))
	}
	return date, sc, nil
}

// Share formats the summary of a finished round.
func (s *Service) Share(ctx context.Context, p Player, round int, url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, _, err := s.open(ctx, p, round)
	if err != nil {
		return "", err
	}
	if !g.Status().Terminal() {
		return "", ErrNotFinished
	}
	return game.Share(g.Rows(), url), nil
}

// Artwork returns what the renderer needs for one round.
func (s *Service) Artwork(ctx context.Context, p Player, round int) (*Canvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, sl, err := s.open(ctx, p, round)
	if err != nil {
		return nil, err
	}
	return &Canvas{
		PuzzleID: g.ID(),
		Image:    sl.painting.Image,
		Grid:     sl.grid,
		Tiles:    g.VisibleTiles(),
	}, nil
}
