package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codbbit.net/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Users, error)

	// GetCredential returns the stored Salesforce credential for the
	// user, or nil when the user never connected an org.
	GetCredential(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error)
	SaveCredential(ctx context.Context, userID uuid.UUID, cred *domain.SalesforceCredential) error
	// MarkDisconnected flips the connected flag off, leaving the rest of
	// the credential untouched.
	MarkDisconnected(ctx context.Context, userID uuid.UUID) error

	IsSolved(ctx context.Context, userID uuid.UUID, problemID string) (bool, error)
	// AwardPoints applies the point award, solved-set insert and
	// streak/badge update in one transaction. It reports false without
	// changing anything when the problem is already in the solved set.
	AwardPoints(ctx context.Context, userID uuid.UUID, problemID string, points int, solvedAt time.Time) (bool, error)
}
