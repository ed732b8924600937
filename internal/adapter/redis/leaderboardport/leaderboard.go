package leaderboardport

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
)

const leaderboardKey = "codbbit:leaderboard"

var _ secondary.LeaderboardPort = &LeaderboardRepository{}

// LeaderboardRepository keeps the point ranking in a Redis sorted set,
// keyed by username.
type LeaderboardRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewLeaderboardRepository(redisClient *redis.Client, logger primary.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (r *LeaderboardRepository) IncrementScore(ctx context.Context, userName string, points int) error {
	if err := r.redisClient.ZIncrBy(ctx, leaderboardKey, float64(points), userName).Err(); err != nil {
		return fmt.Errorf("failed to increment leaderboard score: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) Top(ctx context.Context, n int) ([]secondary.LeaderboardEntry, error) {
	members, err := r.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]secondary.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		name, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, secondary.LeaderboardEntry{
			UserName: name,
			Points:   int(member.Score),
			Rank:     i + 1,
		})
	}
	return entries, nil
}

func (r *LeaderboardRepository) RankOf(ctx context.Context, userName string) (int, error) {
	rank, err := r.redisClient.ZRevRank(ctx, leaderboardKey, userName).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read leaderboard rank: %w", err)
	}
	return int(rank) + 1, nil
}
