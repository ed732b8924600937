package users

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/core/services/ranking"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/handlers"
)

type Handler struct {
	userPort secondary.UserPort
	ranking  ranking.IRankingService
	logger   primary.Logger
}

func NewHandler(userPort secondary.UserPort, ranking ranking.IRankingService, logger primary.Logger) *Handler {
	return &Handler{
		userPort: userPort,
		ranking:  ranking,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users/{username}", h.Profile).Methods("GET")
}

type ProfileResponse struct {
	UserName      string           `json:"username"`
	Points        int              `json:"points"`
	Rank          int              `json:"rank"`
	SolvedCount   int              `json:"solved_count"`
	Badges        domain.BadgeList `json:"badges"`
	CurrentStreak int              `json:"current_streak"`
	LongestStreak int              `json:"longest_streak"`
	LastSolvedAt  *time.Time       `json:"last_solved_at,omitempty"`
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["username"]

	user, err := h.userPort.GetByUserName(r.Context(), userName)
	if err != nil {
		h.logger.Error("Failed to load user", "username", userName, "error", err)
		handlers.ResponseError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		handlers.ResponseError(w, "User not found", http.StatusNotFound)
		return
	}

	rank, err := h.ranking.RankOf(r.Context(), user.UserName)
	if err != nil {
		h.logger.Warn("Failed to read leaderboard rank", "username", userName, "error", err)
		rank = 0
	}

	handlers.ResponseWithJson(w, http.StatusOK, ProfileResponse{
		UserName:      user.UserName,
		Points:        user.Points,
		Rank:          rank,
		SolvedCount:   len(user.Solved),
		Badges:        user.Badges,
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		LastSolvedAt:  user.LastSolvedAt,
	})
}
