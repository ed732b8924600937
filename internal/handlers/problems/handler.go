package problems

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/services/catalog"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/handlers"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type Handler struct {
	problems catalog.IProblemService
	logger   primary.Logger
}

func NewHandler(problems catalog.IProblemService, logger primary.Logger) *Handler {
	return &Handler{
		problems: problems,
		logger:   logger,
	}
}

// RegisterRoutes mounts the catalog endpoints. Reading the catalog is
// public; authoring requires an admin token.
func (h *Handler) RegisterRoutes(router *mux.Router, admin *mux.Router) {
	router.HandleFunc("/api/problems", h.List).Methods("GET")
	router.HandleFunc("/api/problems/{problemId}", h.Get).Methods("GET")

	admin.HandleFunc("/api/problems", h.Create).Methods("POST")
	admin.HandleFunc("/api/problems/{problemId}", h.Update).Methods("PUT")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	kind := domain.ProblemKind(r.URL.Query().Get("kind"))

	problems, err := h.problems.List(r.Context(), kind, limit)
	if err != nil {
		h.logger.Error("Failed to list problems", "error", err)
		handlers.ResponseError(w, "Failed to list problems", http.StatusInternalServerError)
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, problems)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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
	handlers.ResponseWithJson(w, http.StatusOK, problem)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var problem domain.Problem
	if err := json.NewDecoder(r.Body).Decode(&problem); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if problem.Title == "" || (problem.TestCode == "" && problem.Kind != domain.ProblemKindSOQL) {
		handlers.ResponseError(w, "title and test_code are required", http.StatusBadRequest)
		return
	}

	if err := h.problems.Create(r.Context(), &problem); err != nil {
		h.logger.Error("Failed to create problem", "error", err)
		handlers.ResponseError(w, "Failed to create problem", http.StatusInternalServerError)
		return
	}
	handlers.ResponseWithJson(w, http.StatusCreated, problem)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var problem domain.Problem
	if err := json.NewDecoder(r.Body).Decode(&problem); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	problem.ID = mux.Vars(r)["problemId"]

	if err := h.problems.Update(r.Context(), &problem); err != nil {
		if err == errs.ProblemNotFound {
			handlers.ResponseError(w, "Problem not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to update problem", "problem_id", problem.ID, "error", err)
		handlers.ResponseError(w, "Failed to update problem", http.StatusInternalServerError)
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, problem)
}
