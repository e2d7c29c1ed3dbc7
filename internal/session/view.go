package session

import (
	"github.com/crovisgrind/art-guessing-game/internal/game"
)

// Day is today's overview.
type Day struct {
	Date   string    `json:"date"`
	Day    int       `json:"day"`
	Rounds []Summary `json:"rounds"`
}

// Summary describes one round without giving the answer away while it is
// still in play.
type Summary struct {
	Round       int          `json:"round"`
	Name        string       `json:"name"`
	PuzzleID    string       `json:"puzzleId"`
	Grid        int          `json:"grid"`
	Points      int          `json:"points"`
	MaxGuesses  int          `json:"maxGuesses"`
	Pattern     game.Pattern `json:"pattern"`
	Slots       int          `json:"slots"`
	Status      game.Status  `json:"status"`
	GuessesUsed int          `json:"guessesUsed"`
	Artist      string       `json:"artist,omitempty"`
	Title       string       `json:"title,omitempty"`
}

// Board is everything a renderer needs to draw one round.
type Board struct {
	Summary
	Rows          []game.GuessRow `json:"rows"`
	Keyboard      game.Keyboard   `json:"keyboard"`
	Tiles         []int           `json:"tiles"`
	RevealedCount int             `json:"revealedCount"`
	TileCount     int             `json:"tileCount"`
	GuessesLeft   int             `json:"guessesLeft"`
}

// Canvas is the renderer input for one round.
type Canvas struct {
	PuzzleID string
	Image    string
	Grid     int
	Tiles    []int
}

func summarize(g *game.Game, sl slot) Summary {
	s := Summary{
		Round:       sl.index,
		Name:        sl.round.Name,
		PuzzleID:    sl.painting.ID,
		Grid:        sl.grid,
		Points:      sl.round.Points,
		MaxGuesses:  game.MaxGuesses,
		Pattern:     g.Pattern(),
		Slots:       g.Pattern().Slots(),
		Status:      g.Status(),
		GuessesUsed: g.GuessesUsed(),
	}
	if g.Status().Terminal() {
		s.Artist = sl.painting.Artist
		s.Title = sl.painting.Title
	}
	return s
}

func boardOf(g *game.Game, sl slot) *Board {
	return &Board{
		Summary:       summarize(g, sl),
		Rows:          g.Rows(),
		Keyboard:      g.Keyboard(),
		Tiles:         g.VisibleTiles(),
		RevealedCount: g.RevealedCount(),
		TileCount:     g.TileCount(),
		GuessesLeft:   g.GuessesLeft(),
	}
}
