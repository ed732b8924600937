package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(offset int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestApplyAward_PointsAndSolvedSet(t *testing.T) {
	u := &Users{}
	u.ApplyAward("two-sum", 25, day(0))

	assert.Equal(t, 25, u.Points)
	assert.True(t, u.Solved.Contains("two-sum"))
	assert.Equal(t, 1, u.CurrentStreak)
	assert.Equal(t, 1, u.LongestStreak)
}

func TestApplyAward_StreakExtendsOnConsecutiveDays(t *testing.T) {
	u := &Users{}
	u.ApplyAward("p1", 10, day(0))
	u.ApplyAward("p2", 10, day(1))
	u.ApplyAward("p3", 10, day(2))

	assert.Equal(t, 3, u.CurrentStreak)
	assert.Equal(t, 3, u.LongestStreak)
}

func TestApplyAward_SameDaySolveKeepsStreak(t *testing.T) {
	u := &Users{}
	u.ApplyAward("p1", 10, day(0))
	u.ApplyAward("p2", 10, day(0).Add(3*time.Hour))

	assert.Equal(t, 1, u.CurrentStreak)
}

func TestApplyAward_GapResetsStreakButKeepsLongest(t *testing.T) {
	u := &Users{}
	u.ApplyAward("p1", 10, day(0))
	u.ApplyAward("p2", 10, day(1))
	u.ApplyAward("p3", 10, day(5))

	assert.Equal(t, 1, u.CurrentStreak)
	assert.Equal(t, 2, u.LongestStreak)
}

func TestApplyAward_PointBadges(t *testing.T) {
	u := &Users{}
	u.ApplyAward("p1", 10, day(0))
	assert.True(t, u.Badges.Has("First Blood"))
	assert.False(t, u.Badges.Has("Century"))

	u.ApplyAward("p2", 90, day(1))
	assert.True(t, u.Badges.Has("Century"))
}

func TestApplyAward_BadgesNotDuplicated(t *testing.T) {
	u := &Users{}
	u.ApplyAward("p1", 10, day(0))
	u.ApplyAward("p2", 10, day(1))

	count := 0
	for _, b := range u.Badges {
		if b.Name == "First Blood" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestApplyAward_StreakBadge(t *testing.T) {
	u := &Users{}
	for i := 0; i < 7; i++ {
		u.ApplyAward("p"+string(rune('a'+i)), 10, day(i))
	}
	assert.True(t, u.Badges.Has("Week Warrior"))
}
