package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	querybuilder "gitlab.com/codbbit.net/internal/utils"
)

var _ secondary.ProblemPort = &problemRepo{}

type problemRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.ProblemPort {
	if envSchema := os.Getenv("DB_SCHEMA"); envSchema != "" {
		schema = envSchema
	}
	if schema == "" {
		schema = "public"
	}
	return &problemRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (p problemRepo) Create(ctx context.Context, problem *domain.Problem) error {
	problemTbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(p.schema).Insert(
		problemTbl.ID, problemTbl.Title, problemTbl.Description,
		problemTbl.Difficulty, problemTbl.Kind, problemTbl.StarterCode,
		problemTbl.TestCode, problemTbl.TriggerObject, problemTbl.Examples,
		problemTbl.Hints, problemTbl.ExpectedRows,
	).
		Into(problemTbl.GetTableName()).
		Values(
			problem.ID, problem.Title, problem.Description,
			problem.Difficulty, problem.Kind, problem.StarterCode,
			problem.TestCode, problem.TriggerObject, problem.Examples,
			problem.Hints, problem.ExpectedRows,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := p.db.ExecContext(ctx, query, args...)
	return err
}

func (p problemRepo) Update(ctx context.Context, problem *domain.Problem) error {
	problemTbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(p.schema).
		Update(problemTbl.GetTableName(), querybuilder.UpdateData{
			problemTbl.Title:         problem.Title,
			problemTbl.Description:   problem.Description,
			problemTbl.Difficulty:    problem.Difficulty,
			problemTbl.Kind:          problem.Kind,
			problemTbl.StarterCode:   problem.StarterCode,
			problemTbl.TestCode:      problem.TestCode,
			problemTbl.TriggerObject: problem.TriggerObject,
			problemTbl.Examples:      problem.Examples,
			problemTbl.Hints:         problem.Hints,
			problemTbl.ExpectedRows:  problem.ExpectedRows,
		}).
		Where(fmt.Sprintf("%s = ?", problemTbl.ID), problem.ID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := p.db.ExecContext(ctx, query, args...)
	return err
}

func (p problemRepo) Get(ctx context.Context, id string) (*domain.Problem, error) {
	problemTbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(p.schema).
		Select(
			problemTbl.ID, problemTbl.Title, problemTbl.Description,
			problemTbl.Difficulty, problemTbl.Kind, problemTbl.StarterCode,
			problemTbl.TestCode, problemTbl.TriggerObject, problemTbl.Examples,
			problemTbl.Hints, problemTbl.ExpectedRows,
		).
		From(problemTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", problemTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var problem domain.Problem
	err := p.db.GetContext(ctx, &problem, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &problem, nil
}

func (p problemRepo) List(ctx context.Context, kind domain.ProblemKind, limit int) ([]*domain.Problem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	problemTbl := domain.GetProblemTable()
	builder := querybuilder.NewQueryBuilder(p.schema).
		Select(
			problemTbl.ID, problemTbl.Title, problemTbl.Description,
			problemTbl.Difficulty, problemTbl.Kind, problemTbl.StarterCode,
			problemTbl.TestCode, problemTbl.TriggerObject, problemTbl.Examples,
			problemTbl.Hints, problemTbl.ExpectedRows,
		).
		From(problemTbl.GetTableName())
	if kind != "" {
		builder = builder.Where(fmt.Sprintf("%s = ?", problemTbl.Kind), kind)
	}
	query, args := builder.OrderBy(problemTbl.Title, true).Build()

	query = sqlx.Rebind(sqlx.DOLLAR, fmt.Sprintf("%s LIMIT %d", query, limit))
	var problems []*domain.Problem
	if err := p.db.SelectContext(ctx, &problems, query, args...); err != nil {
		return nil, err
	}
	return problems, nil
}
