package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/services/ranking"
	"gitlab.com/codbbit.net/internal/handlers"
)

type Handler struct {
	ranking ranking.IRankingService
	logger  primary.Logger
}

func NewHandler(ranking ranking.IRankingService, logger primary.Logger) *Handler {
	return &Handler{
		ranking: ranking,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/leaderboard", h.Top).Methods("GET")
}

func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.ranking.Top(r.Context(), n)
	if err != nil {
		h.logger.Error("Failed to read leaderboard", "error", err)
		handlers.ResponseError(w, "Failed to read leaderboard", http.StatusInternalServerError)
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, entries)
}
