package catalog

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type IProblemService interface {
	Create(ctx context.Context, problem *domain.Problem) error
	Update(ctx context.Context, problem *domain.Problem) error
	Get(ctx context.Context, id string) (*domain.Problem, error)
	List(ctx context.Context, kind domain.ProblemKind, limit int) ([]*domain.Problem, error)
}

var _ IProblemService = &problemService{}

type problemService struct {
	problemPort secondary.ProblemPort
	logger      primary.Logger
}

func NewProblemService(problemPort secondary.ProblemPort, logger primary.Logger) IProblemService {
	return &problemService{
		problemPort: problemPort,
		logger:      logger,
	}
}

func (s *problemService) Create(ctx context.Context, problem *domain.Problem) error {
	if problem.ID == "" {
		problem.ID = uuid.New().String()
	}
	if !problem.Difficulty.Valid() {
		problem.Difficulty = domain.DifficultyEasy
	}
	return s.problemPort.Create(ctx, problem)
}

func (s *problemService) Update(ctx context.Context, problem *domain.Problem) error {
	existing, err := s.problemPort.Get(ctx, problem.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.ProblemNotFound
	}
	return s.problemPort.Update(ctx, problem)
}

func (s *problemService) Get(ctx context.Context, id string) (*domain.Problem, error) {
	problem, err := s.problemPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.ProblemNotFound
	}
	return problem, nil
}

func (s *problemService) List(ctx context.Context, kind domain.ProblemKind, limit int) ([]*domain.Problem, error) {
	return s.problemPort.List(ctx, kind, limit)
}
