package domain

import "time"

type badgeRule struct {
	Name      string
	MinPoints int
	MinStreak int
}

var badgeRules = []badgeRule{
	{Name: "First Blood", MinPoints: 1},
	{Name: "Century", MinPoints: 100},
	{Name: "Half Grand", MinPoints: 500},
	{Name: "Grandmaster", MinPoints: 1000},
	{Name: "Week Warrior", MinStreak: 7},
	{Name: "Monthly Grinder", MinStreak: 30},
}

// ApplyAward folds a first-time solve into the user record: point
// total, solved-set membership, streak counters and any newly earned
// badges. The caller persists every mutated field in a single write.
func (u *Users) ApplyAward(problemID string, points int, now time.Time) {
	u.Points += points

	if u.Solved == nil {
		u.Solved = SolvedSet{}
	}
	u.Solved[problemID] = now

	u.CurrentStreak = u.nextStreak(now)
	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
	solvedAt := now
	u.LastSolvedAt = &solvedAt

	for _, rule := range badgeRules {
		if u.Badges.Has(rule.Name) {
			continue
		}
		if rule.MinPoints > 0 && u.Points < rule.MinPoints {
			continue
		}
		if rule.MinStreak > 0 && u.CurrentStreak < rule.MinStreak {
			continue
		}
		u.Badges = append(u.Badges, Badge{Name: rule.Name, AwardedAt: now})
	}
}

// nextStreak extends the streak when the previous solve was yesterday,
// keeps it for a same-day solve and resets it otherwise.
func (u *Users) nextStreak(now time.Time) int {
	if u.LastSolvedAt == nil {
		return 1
	}
	last := u.LastSolvedAt.UTC()
	today := now.UTC().Truncate(24 * time.Hour)
	lastDay := last.Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		if u.CurrentStreak == 0 {
			return 1
		}
		return u.CurrentStreak
	case 24 * time.Hour:
		return u.CurrentStreak + 1
	default:
		return 1
	}
}
