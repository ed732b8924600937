package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/services/catalog"
	"gitlab.com/codbbit.net/internal/core/services/submission"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/handlers"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type Handler struct {
	submissions submission.ISubmissionService
	problems    catalog.IProblemService
	logger      primary.Logger
}

func NewHandler(submissions submission.ISubmissionService, problems catalog.IProblemService, logger primary.Logger) *Handler {
	return &Handler{
		submissions: submissions,
		problems:    problems,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/api/problems/{problemId}/submit", h.Submit).Methods("POST")
}

type SubmitRequest struct {
	Code string `json:"code"`
}

// Submit grades a solution against its problem. Grading failures come
// back as a 200 with an unsuccessful outcome; only transport-level
// problems with our own API produce error statuses.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromContext(r.Context())
	if err != nil {
		handlers.ResponseError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		handlers.ResponseError(w, "code is required", http.StatusBadRequest)
		return
	}

	problemID := mux.Vars(r)["problemId"]
	problem, err := h.problems.Get(r.Context(), problemID)
	if err != nil {
		if err == errs.ProblemNotFound {
			handlers.ResponseError(w, "Problem not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to load problem", "problem_id", problemID, "error", err)
		handlers.ResponseError(w, "Failed to load problem", http.StatusInternalServerError)
		return
	}

	var outcome domain.SubmissionOutcome
	if problem.Kind == domain.ProblemKindSOQL {
		outcome = h.submissions.SubmitQuery(r.Context(), userID, problem, req.Code)
	} else {
		outcome = h.submissions.Submit(r.Context(), userID, problem, req.Code)
	}
	handlers.ResponseWithJson(w, http.StatusOK, outcome)
}
