package game

import "context"

// MinPoints is the floor of a winning round's score.
const MinPoints = 10

// Score returns the points for a win: 10 points off per guess beyond the
// first, never below MinPoints.
func Score(basePoints, guessesUsed int) int {
	return max(basePoints-10*(guessesUsed-1), MinPoints)
}

// SessionScore accumulates per-round results for one player and day.
// A nil PerRound entry is a round that has not finished yet.
type SessionScore struct {
	Total    int    `json:"total"`
	PerRound []*int `json:"perRound"`
}

// NewSessionScore returns an empty score for the given round count.
func NewSessionScore(rounds int) *SessionScore {
	return &SessionScore{PerRound: make([]*int, rounds)}
}

// Recorded reports whether round already has a score.
func (s *SessionScore) Recorded(round int) bool {
	return round >= 0 && round < len(s.PerRound) && s.PerRound[round] != nil
}

// RecordWin sets the round's score and adds it to the total. It returns
// false, changing nothing, when the round is out of range or already set.
func (s *SessionScore) RecordWin(round, basePoints, guessesUsed int) bool {
	if round < 0 || round >= len(s.PerRound) || s.PerRound[round] != nil {
		return false
	}
	pts := Score(basePoints, guessesUsed)
	s.PerRound[round] = &pts
	s.Total += pts
	return true
}

// RecordLoss sets the round's score to zero. Same idempotence as RecordWin.
func (s *SessionScore) RecordLoss(round int) bool {
	if round < 0 || round >= len(s.PerRound) || s.PerRound[round] != nil {
		return false
	}
	zero := 0
	s.PerRound[round] = &zero
	return true
}

// ScoreRepository persists session scores independently of round state.
type ScoreRepository interface {
	LoadScore(ctx context.Context, id string) (sc *SessionScore, ok bool, err error)
	SaveScore(ctx context.Context, id string, sc *SessionScore) error
}
