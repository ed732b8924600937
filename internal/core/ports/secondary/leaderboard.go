package secondary

import "context"

type LeaderboardEntry struct {
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

type LeaderboardPort interface {
	// IncrementScore adds points to the user's leaderboard score.
	IncrementScore(ctx context.Context, userName string, points int) error
	Top(ctx context.Context, n int) ([]LeaderboardEntry, error)
	// RankOf returns the 1-based rank of the user, or 0 when the user
	// has no score yet.
	RankOf(ctx context.Context, userName string) (int, error)
}
