package connection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codbbit.net/internal/config"
	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type IConnectionService interface {
	// EnsureConnection returns a usable credential for the user,
	// refreshing the access token first when it is older than the
	// freshness threshold.
	EnsureConnection(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error)

	ConnectURL(state string) string
	CompleteConnection(ctx context.Context, userID uuid.UUID, code string) error
	Disconnect(ctx context.Context, userID uuid.UUID) error
}

var _ IConnectionService = &connectionService{}

type connectionService struct {
	userPort    secondary.UserPort
	sfPort      secondary.SalesforcePort
	sfAuth      secondary.SalesforceAuthPort
	tokenMaxAge time.Duration
	logger      primary.Logger
}

func NewConnectionService(
	userPort secondary.UserPort,
	sfPort secondary.SalesforcePort,
	sfAuth secondary.SalesforceAuthPort,
	cfg *config.SubmissionCfg,
	logger primary.Logger,
) IConnectionService {
	return &connectionService{
		userPort:    userPort,
		sfPort:      sfPort,
		sfAuth:      sfAuth,
		tokenMaxAge: cfg.TokenMaxAge,
		logger:      logger,
	}
}

func (s *connectionService) EnsureConnection(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error) {
	cred, err := s.userPort.GetCredential(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cred == nil || !cred.Connected {
		return nil, errs.NotConnected
	}

	if cred.Age(time.Now()) <= s.tokenMaxAge {
		return cred, nil
	}

	refreshed, err := s.sfPort.Refresh(ctx, cred)
	if err != nil {
		// A refresh failure is terminal for the session: mark the org
		// disconnected so the user is prompted to reconnect instead of
		// the workflow retrying a dead refresh token.
		s.logger.Warn("Token refresh failed, marking org disconnected", "user_id", userID.String(), "error", err)
		if markErr := s.userPort.MarkDisconnected(ctx, userID); markErr != nil {
			s.logger.Error("Failed to mark org disconnected", "user_id", userID.String(), "error", markErr)
		}
		return nil, errs.RefreshFailed
	}

	if err := s.userPort.SaveCredential(ctx, userID, refreshed); err != nil {
		return nil, err
	}
	return refreshed, nil
}

func (s *connectionService) ConnectURL(state string) string {
	return s.sfAuth.AuthCodeURL(state)
}

func (s *connectionService) CompleteConnection(ctx context.Context, userID uuid.UUID, code string) error {
	cred, err := s.sfAuth.Exchange(ctx, code)
	if err != nil {
		return err
	}
	return s.userPort.SaveCredential(ctx, userID, cred)
}

func (s *connectionService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	return s.userPort.MarkDisconnected(ctx, userID)
}
