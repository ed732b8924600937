package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	querybuilder "gitlab.com/codbbit.net/internal/utils"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	if envSchema := os.Getenv("DB_SCHEMA"); envSchema != "" {
		schema = envSchema
	}
	if schema == "" {
		schema = "public"
	}
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) Create(ctx context.Context, user *domain.Users) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Solved == nil {
		user.Solved = domain.SolvedSet{}
	}
	if user.Badges == nil {
		user.Badges = domain.BadgeList{}
	}

	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).Insert(
		userTbl.ID, userTbl.UserName, userTbl.Email, userTbl.PasswordHash,
		userTbl.IsAdmin, userTbl.Points, userTbl.Solved, userTbl.Badges,
		userTbl.CurrentStreak, userTbl.LongestStreak,
	).
		Into(userTbl.GetTableName()).
		Values(
			user.ID, user.UserName, user.Email, user.PasswordHash,
			user.IsAdmin, user.Points, user.Solved, user.Badges,
			user.CurrentStreak, user.LongestStreak,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := u.db.ExecContext(ctx, query, args...)

	return err
}

func (u userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return u.getWhere(ctx, domain.GetUserTable().ID, id)
}

func (u userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	return u.getWhere(ctx, domain.GetUserTable().UserName, userName)
}

func (u userRepo) getWhere(ctx context.Context, column string, value interface{}) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			userTbl.ID, userTbl.UserName, userTbl.Email, userTbl.PasswordHash,
			userTbl.IsAdmin, userTbl.Points, userTbl.Solved, userTbl.Badges,
			userTbl.CurrentStreak, userTbl.LongestStreak, userTbl.LastSolvedAt,
		).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", column), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// credentialRow scans the nullable credential columns; a user who never
// connected an org has them all NULL.
type credentialRow struct {
	AccessToken  *string    `db:"sf_access_token"`
	RefreshToken *string    `db:"sf_refresh_token"`
	InstanceURL  *string    `db:"sf_instance_url"`
	IssuedAt     *time.Time `db:"sf_issued_at"`
	Connected    *bool      `db:"sf_connected"`
}

func (u userRepo) GetCredential(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error) {
	userTbl := domain.GetUserTable()
	credTbl := domain.GetCredentialTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			credTbl.AccessToken, credTbl.RefreshToken, credTbl.InstanceURL,
			credTbl.IssuedAt, credTbl.Connected,
		).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", userTbl.ID), userID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var row credentialRow
	err := u.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if row.AccessToken == nil {
		return nil, nil
	}

	cred := &domain.SalesforceCredential{
		AccessToken: *row.AccessToken,
	}
	if row.RefreshToken != nil {
		cred.RefreshToken = *row.RefreshToken
	}
	if row.InstanceURL != nil {
		cred.InstanceURL = *row.InstanceURL
	}
	if row.IssuedAt != nil {
		cred.IssuedAt = *row.IssuedAt
	}
	if row.Connected != nil {
		cred.Connected = *row.Connected
	}
	return cred, nil
}

func (u userRepo) SaveCredential(ctx context.Context, userID uuid.UUID, cred *domain.SalesforceCredential) error {
	userTbl := domain.GetUserTable()
	credTbl := domain.GetCredentialTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Update(userTbl.GetTableName(), querybuilder.UpdateData{
			credTbl.AccessToken:  cred.AccessToken,
			credTbl.RefreshToken: cred.RefreshToken,
			credTbl.InstanceURL:  cred.InstanceURL,
			credTbl.IssuedAt:     cred.IssuedAt,
			credTbl.Connected:    cred.Connected,
		}).
		Where(fmt.Sprintf("%s = ?", userTbl.ID), userID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := u.db.ExecContext(ctx, query, args...)
	return err
}

func (u userRepo) MarkDisconnected(ctx context.Context, userID uuid.UUID) error {
	userTbl := domain.GetUserTable()
	credTbl := domain.GetCredentialTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Update(userTbl.GetTableName(), querybuilder.UpdateData{
			credTbl.Connected: false,
		}).
		Where(fmt.Sprintf("%s = ?", userTbl.ID), userID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := u.db.ExecContext(ctx, query, args...)
	return err
}

func (u userRepo) IsSolved(ctx context.Context, userID uuid.UUID, problemID string) (bool, error) {
	userTbl := domain.GetUserTable()
	query := fmt.Sprintf(
		"SELECT jsonb_exists(%s, ?) FROM %s WHERE %s = ?",
		userTbl.Solved, u.qualified(userTbl.GetTableName()), userTbl.ID,
	)
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var solved bool
	err := u.db.GetContext(ctx, &solved, query, problemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return solved, nil
}

// AwardPoints runs the one persisting write of the grading workflow.
// The row is locked, the solved-set condition re-checked under the
// lock, and points, solved-set, streak and badges updated together, so
// a concurrent duplicate submission cannot double-award.
func (u userRepo) AwardPoints(ctx context.Context, userID uuid.UUID, problemID string, points int, solvedAt time.Time) (bool, error) {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	userTbl := domain.GetUserTable()
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = ? FOR UPDATE",
		userTbl.ID, userTbl.Points, userTbl.Solved, userTbl.Badges,
		userTbl.CurrentStreak, userTbl.LongestStreak, userTbl.LastSolvedAt,
		u.qualified(userTbl.GetTableName()), userTbl.ID,
	)
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var user domain.Users
	if err := tx.GetContext(ctx, &user, query, userID); err != nil {
		return false, err
	}
	if user.Solved.Contains(problemID) {
		return false, nil
	}

	user.ApplyAward(problemID, points, solvedAt)

	update, args := querybuilder.NewQueryBuilder(u.schema).
		Update(userTbl.GetTableName(), querybuilder.UpdateData{
			userTbl.Points:        user.Points,
			userTbl.Solved:        user.Solved,
			userTbl.Badges:        user.Badges,
			userTbl.CurrentStreak: user.CurrentStreak,
			userTbl.LongestStreak: user.LongestStreak,
			userTbl.LastSolvedAt:  user.LastSolvedAt,
		}).
		Where(fmt.Sprintf("%s = ?", userTbl.ID), userID).
		Build()

	update = sqlx.Rebind(sqlx.DOLLAR, update)
	if _, err := tx.ExecContext(ctx, update, args...); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (u userRepo) qualified(table string) string {
	if u.schema == "" {
		return table
	}
	return u.schema + "." + table
}
