package secondary

import (
	"context"

	"gitlab.com/codbbit.net/internal/domain"
)

type ProblemPort interface {
	Create(ctx context.Context, problem *domain.Problem) error
	Update(ctx context.Context, problem *domain.Problem) error
	Get(ctx context.Context, id string) (*domain.Problem, error)
	List(ctx context.Context, kind domain.ProblemKind, limit int) ([]*domain.Problem, error)
}
