package submission

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/core/services/connection"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type ISubmissionService interface {
	// Submit grades an Apex class or trigger submission. It never
	// returns an error: every failure mode is folded into the outcome.
	Submit(ctx context.Context, userID uuid.UUID, problem *domain.Problem, code string) domain.SubmissionOutcome
	// SubmitQuery grades a SOQL submission against the problem's
	// expected result rows.
	SubmitQuery(ctx context.Context, userID uuid.UUID, problem *domain.Problem, query string) domain.SubmissionOutcome
}

var _ ISubmissionService = &submissionService{}

type submissionService struct {
	userPort    secondary.UserPort
	sfPort      secondary.SalesforcePort
	leaderboard secondary.LeaderboardPort
	connections connection.IConnectionService
	logger      primary.Logger
}

func NewSubmissionService(
	userPort secondary.UserPort,
	sfPort secondary.SalesforcePort,
	leaderboard secondary.LeaderboardPort,
	connections connection.IConnectionService,
	logger primary.Logger,
) ISubmissionService {
	return &submissionService{
		userPort:    userPort,
		sfPort:      sfPort,
		leaderboard: leaderboard,
		connections: connections,
		logger:      logger,
	}
}

func (s *submissionService) Submit(ctx context.Context, userID uuid.UUID, problem *domain.Problem, code string) domain.SubmissionOutcome {
	solved, err := s.userPort.IsSolved(ctx, userID, problem.ID)
	if err != nil {
		return failureFrom(err)
	}
	if solved {
		return alreadySolved()
	}

	cred, err := s.connections.EnsureConnection(ctx, userID)
	if err != nil {
		return failureFrom(err)
	}

	solutionKind := domain.ArtifactApexClass
	if problem.Kind == domain.ProblemKindTrigger {
		solutionKind = domain.ArtifactApexTrigger
	}
	solutionName, err := ExtractArtifactName(code, solutionKind)
	if err != nil {
		return failureFrom(err)
	}
	testName, err := ExtractArtifactName(problem.TestCode, domain.ArtifactApexClass)
	if err != nil {
		return failureFrom(err)
	}
	if solutionName == testName {
		return failureFrom(errs.NameCollision)
	}

	if _, err := s.upsertArtifact(ctx, cred, solutionKind, solutionName, code, problem.TriggerObject); err != nil {
		return failureFrom(err)
	}
	testRef, err := s.upsertArtifact(ctx, cred, domain.ArtifactApexClass, testName, problem.TestCode, "")
	if err != nil {
		return failureFrom(err)
	}

	results, err := s.sfPort.RunTests(ctx, cred, testRef.ID)
	if err != nil {
		return failureFrom(err)
	}

	// First failing test wins; remaining failures are not aggregated.
	for _, result := range results {
		if result.Outcome != domain.TestOutcomePass {
			return domain.SubmissionOutcome{
				Success: false,
				Message: fmt.Sprintf("test method %s failed", result.MethodName),
				Details: result.Message + "\n" + result.StackTrace,
			}
		}
	}

	return s.award(ctx, userID, problem)
}

func (s *submissionService) SubmitQuery(ctx context.Context, userID uuid.UUID, problem *domain.Problem, query string) domain.SubmissionOutcome {
	solved, err := s.userPort.IsSolved(ctx, userID, problem.ID)
	if err != nil {
		return failureFrom(err)
	}
	if solved {
		return alreadySolved()
	}

	cred, err := s.connections.EnsureConnection(ctx, userID)
	if err != nil {
		return failureFrom(err)
	}

	records, err := s.sfPort.Query(ctx, cred, query)
	if err != nil {
		return failureFrom(err)
	}

	if msg := matchRows(problem.ExpectedRows, records); msg != "" {
		return domain.SubmissionOutcome{
			Success: false,
			Message: "query results do not match the expected output",
			Details: msg,
		}
	}

	return s.award(ctx, userID, problem)
}

// award performs the one persisting step of the workflow: a single
// atomic write of points, solved-set and streak state, conditional on
// the problem not already being solved. A concurrent duplicate
// submission loses the condition and is reported as already solved.
func (s *submissionService) award(ctx context.Context, userID uuid.UUID, problem *domain.Problem) domain.SubmissionOutcome {
	points := problem.Difficulty.Points()
	awarded, err := s.userPort.AwardPoints(ctx, userID, problem.ID, points, time.Now())
	if err != nil {
		return failureFrom(err)
	}
	if !awarded {
		return alreadySolved()
	}

	// Leaderboard upkeep is best-effort: a ranking hiccup must not turn
	// a passing submission into a failure.
	if user, err := s.userPort.Get(ctx, userID); err == nil {
		if err := s.leaderboard.IncrementScore(ctx, user.UserName, points); err != nil {
			s.logger.Warn("Failed to update leaderboard", "user_id", userID.String(), "error", err)
		}
	} else {
		s.logger.Warn("Failed to load user for leaderboard update", "user_id", userID.String(), "error", err)
	}

	return domain.SubmissionOutcome{
		Success:       true,
		Message:       "all tests passed",
		PointsAwarded: points,
	}
}

func (s *submissionService) upsertArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name, body, triggerObject string) (*domain.ArtifactRef, error) {
	existing, err := s.sfPort.FindArtifact(ctx, cred, kind, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.sfPort.UpdateArtifact(ctx, cred, kind, existing.ID, body); err != nil {
			return nil, err
		}
		return existing, nil
	}
	return s.sfPort.CreateArtifact(ctx, cred, kind, name, body, triggerObject)
}

func alreadySolved() domain.SubmissionOutcome {
	return domain.SubmissionOutcome{
		Success:       true,
		Message:       "already solved",
		PointsAwarded: 0,
	}
}

// failureFrom normalizes every error the workflow can raise into a
// user-facing outcome. Nothing propagates to the caller as an error.
func failureFrom(err error) domain.SubmissionOutcome {
	var remote *errs.RemoteError
	switch {
	case errors.Is(err, errs.NotConnected):
		return domain.SubmissionOutcome{Success: false, Message: "connect your Salesforce org to submit solutions"}
	case errors.Is(err, errs.RefreshFailed):
		return domain.SubmissionOutcome{Success: false, Message: "your Salesforce connection expired, please reconnect"}
	case errors.Is(err, errs.MissingArtifactName):
		return domain.SubmissionOutcome{Success: false, Message: errs.MissingArtifactName.Error()}
	case errors.Is(err, errs.NameCollision):
		return domain.SubmissionOutcome{Success: false, Message: errs.NameCollision.Error()}
	case errors.Is(err, errs.TestRunTimeout):
		return domain.SubmissionOutcome{Success: false, Message: "test run timed out"}
	case errors.As(err, &remote):
		return domain.SubmissionOutcome{Success: false, Message: remote.Message, Details: err.Error()}
	default:
		return domain.SubmissionOutcome{Success: false, Message: "submission failed", Details: err.Error()}
	}
}

// matchRows compares the returned records against the expected rows,
// order-insensitively. It returns an empty string on a match and a
// description of the first discrepancy otherwise.
func matchRows(expected domain.RowList, actual []map[string]interface{}) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("query returned %d rows, expected %d", len(actual), len(expected))
	}

	used := make([]bool, len(actual))
	for i, want := range expected {
		found := false
		for j, got := range actual {
			if used[j] {
				continue
			}
			if reflect.DeepEqual(normalizeRow(want), normalizeRow(got)) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("expected row %d not present in the results", i+1)
		}
	}
	return ""
}

// normalizeRow round-trips values through their JSON shapes so numbers
// compare by value rather than by Go type.
func normalizeRow(row map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for key, value := range row {
		switch v := value.(type) {
		case int:
			out[key] = float64(v)
		case int64:
			out[key] = float64(v)
		case float32:
			out[key] = float64(v)
		default:
			out[key] = value
		}
	}
	return out
}
