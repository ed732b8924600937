package secondary

import (
	"context"

	"gitlab.com/codbbit.net/internal/domain"
)

// SalesforcePort is everything the grading workflow needs from the
// platform's Tooling and OAuth APIs.
type SalesforcePort interface {
	// Refresh exchanges the credential's refresh token for a new access
	// token. The returned credential carries the new token and issue
	// time; the refresh token is replaced only when the platform sends
	// a new one.
	Refresh(ctx context.Context, cred *domain.SalesforceCredential) (*domain.SalesforceCredential, error)

	// FindArtifact looks up an artifact by name, returning nil when no
	// match exists.
	FindArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name string) (*domain.ArtifactRef, error)
	// CreateArtifact deploys a new artifact. triggerObject is the bound
	// sObject for triggers and ignored for classes.
	CreateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name, body, triggerObject string) (*domain.ArtifactRef, error)
	UpdateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, id, body string) error

	// RunTests triggers an asynchronous test run for the test class and
	// polls until every result record is terminal or the polling budget
	// is exhausted.
	RunTests(ctx context.Context, cred *domain.SalesforceCredential, testClassID string) ([]domain.TestMethodResult, error)

	// Query runs a SOQL query through the data API and returns the
	// record list.
	Query(ctx context.Context, cred *domain.SalesforceCredential, soql string) ([]map[string]interface{}, error)
}

// SalesforceAuthPort covers the connect handshake: building the
// authorization redirect and exchanging the callback code for a fresh
// credential.
type SalesforceAuthPort interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.SalesforceCredential, error)
}
