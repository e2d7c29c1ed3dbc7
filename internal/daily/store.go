package daily

import (
	"context"
	"database/sql"
)

// Result is one finished round of one player.
type Result struct {
	UserID   string `json:"userId"`
	Date     string `json:"date"`
	Round    int    `json:"round"`
	PuzzleID string `json:"puzzleId"`
	Guesses  int    `json:"guesses"`
	Points   int    `json:"points"`
	Won      bool   `json:"won"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID finished round on date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string, round int) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=? AND round=?",
		userID, date, round,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult writes r unless a row for (user, date, round) exists.
// inserted reports whether a row was written.
func (s *Store) InsertResult(ctx context.Context, r Result) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, round, puzzle_id, guesses, points, won)
VALUES(?,?,?,?,?,?,?)`, r.UserID, r.Date, r.Round, r.PuzzleID, r.Guesses, r.Points, r.Won,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClaimResults moves a guest's rows to an account. Rows that would collide
// with the account's own results for the same round stay with the guest.
func (s *Store) ClaimResults(ctx context.Context, anonID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, userID, anonID,
	)
	return err
}

type LBRow struct {
	UserID  string `json:"userId"`
	Points  int    `json:"points"`
	Rounds  int    `json:"rounds"`
	Guesses int    `json:"guesses"`
}

// Leaderboard ranks players of date by total points, then fewer guesses,
// then who finished first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, SUM(points), COUNT(1), SUM(guesses)
FROM daily_results
WHERE date=?
GROUP BY user_id
ORDER BY SUM(points) DESC, SUM(guesses) ASC, MAX(created_at) ASC
LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Points, &r.Rounds, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// History returns userID's most recent results, newest first.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, date, round, puzzle_id, guesses, points, won
FROM daily_results
WHERE user_id=?
ORDER BY date DESC, round ASC
LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.UserID, &r.Date, &r.Round, &r.PuzzleID, &r.Guesses, &r.Points, &r.Won); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
