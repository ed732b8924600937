package userrepository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codbbit.net/internal/core/ports/secondary"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newMockRepo(t *testing.T) (secondary.UserPort, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(db, "postgres")
	return New(sqlxDB, nopLogger{}, "public"), sqlxDB, mock
}

func lockedUserRows(userID uuid.UUID, points int, solved string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "points", "solved", "badges",
		"current_streak", "longest_streak", "last_solved_at",
	}).AddRow(userID.String(), points, []byte(solved), []byte(`[]`), 0, 0, nil)
}

func TestAwardPoints_LocksRowAndWritesOnce(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM public\.users WHERE id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(lockedUserRows(userID, 10, `{}`))
	mock.ExpectExec(`UPDATE public\.users SET (.+) WHERE id = \$7`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	awarded, err := repo.AwardPoints(context.Background(), userID, "two-sum", 25, time.Now())
	require.NoError(t, err)
	assert.True(t, awarded)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardPoints_AlreadySolvedWritesNothing(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM public\.users WHERE id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(lockedUserRows(userID, 25, `{"two-sum":"2025-06-01T12:00:00Z"}`))
	// No UPDATE, no commit: the in-lock re-check must bail out before
	// any write. An unexpected Exec fails ExpectationsWereMet.
	mock.ExpectRollback()

	awarded, err := repo.AwardPoints(context.Background(), userID, "two-sum", 25, time.Now())
	require.NoError(t, err)
	assert.False(t, awarded)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardPoints_UpdateFailureRollsBack(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM public\.users WHERE id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(lockedUserRows(userID, 0, `{}`))
	mock.ExpectExec(`UPDATE public\.users SET`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	awarded, err := repo.AwardPoints(context.Background(), userID, "two-sum", 10, time.Now())
	require.Error(t, err)
	assert.False(t, awarded)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsSolved_QueriesSolvedSetMembership(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectQuery(`SELECT jsonb_exists\(solved, \$1\) FROM public\.users WHERE id = \$2`).
		WithArgs("two-sum", userID).
		WillReturnRows(sqlmock.NewRows([]string{"jsonb_exists"}).AddRow(true))

	solved, err := repo.IsSolved(context.Background(), userID, "two-sum")
	require.NoError(t, err)
	assert.True(t, solved)

	require.NoError(t, mock.ExpectationsWereMet())
}
