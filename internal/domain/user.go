package domain

import (
	"time"

	"github.com/google/uuid"
)

type Users struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Email        *string   `db:"email"`
	IsAdmin      bool      `db:"is_admin"`

	Points        int        `db:"points"`
	Solved        SolvedSet  `db:"solved"`
	Badges        BadgeList  `db:"badges"`
	CurrentStreak int        `db:"current_streak"`
	LongestStreak int        `db:"longest_streak"`
	LastSolvedAt  *time.Time `db:"last_solved_at"`

	Credential *SalesforceCredential `db:"-"`
}

// SolvedSet maps a problem ID to the time it was first solved.
// Membership is idempotent: a problem already present must never
// be awarded points again.
type SolvedSet map[string]time.Time

func (s SolvedSet) Contains(problemID string) bool {
	_, ok := s[problemID]
	return ok
}

type Badge struct {
	Name      string    `json:"name"`
	AwardedAt time.Time `json:"awarded_at"`
}

type BadgeList []Badge

func (b BadgeList) Has(name string) bool {
	for _, badge := range b {
		if badge.Name == name {
			return true
		}
	}
	return false
}

type UsersTable struct {
	ID            string
	UserName      string
	PasswordHash  string
	Email         string
	IsAdmin       string
	Points        string
	Solved        string
	Badges        string
	CurrentStreak string
	LongestStreak string
	LastSolvedAt  string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:            "id",
		UserName:      "user_name",
		PasswordHash:  "password_hash",
		Email:         "email",
		IsAdmin:       "is_admin",
		Points:        "points",
		Solved:        "solved",
		Badges:        "badges",
		CurrentStreak: "current_streak",
		LongestStreak: "longest_streak",
		LastSolvedAt:  "last_solved_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}
