package ranking

import (
	"context"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
)

type IRankingService interface {
	Top(ctx context.Context, n int) ([]secondary.LeaderboardEntry, error)
	RankOf(ctx context.Context, userName string) (int, error)
}

var _ IRankingService = &rankingService{}

type rankingService struct {
	leaderboard secondary.LeaderboardPort
	logger      primary.Logger
}

func NewRankingService(leaderboard secondary.LeaderboardPort, logger primary.Logger) IRankingService {
	return &rankingService{
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (s *rankingService) Top(ctx context.Context, n int) ([]secondary.LeaderboardEntry, error) {
	if n <= 0 || n > 100 {
		n = 25
	}
	return s.leaderboard.Top(ctx, n)
}

func (s *rankingService) RankOf(ctx context.Context, userName string) (int, error) {
	return s.leaderboard.RankOf(ctx, userName)
}
