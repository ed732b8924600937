package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codbbit.net/internal/config"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// fakeUserPort covers the credential slice of the user port with an
// in-memory map.
type fakeUserPort struct {
	creds        map[uuid.UUID]*domain.SalesforceCredential
	saveCalls    int
	disconnected []uuid.UUID
}

func newFakeUserPort() *fakeUserPort {
	return &fakeUserPort{creds: map[uuid.UUID]*domain.SalesforceCredential{}}
}

func (f *fakeUserPort) Create(ctx context.Context, user *domain.Users) error { return nil }
func (f *fakeUserPort) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return nil, nil
}
func (f *fakeUserPort) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	return nil, nil
}

func (f *fakeUserPort) GetCredential(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error) {
	return f.creds[userID], nil
}

func (f *fakeUserPort) SaveCredential(ctx context.Context, userID uuid.UUID, cred *domain.SalesforceCredential) error {
	f.saveCalls++
	f.creds[userID] = cred
	return nil
}

func (f *fakeUserPort) MarkDisconnected(ctx context.Context, userID uuid.UUID) error {
	f.disconnected = append(f.disconnected, userID)
	if cred, ok := f.creds[userID]; ok {
		cred.Connected = false
	}
	return nil
}

func (f *fakeUserPort) IsSolved(ctx context.Context, userID uuid.UUID, problemID string) (bool, error) {
	return false, nil
}

func (f *fakeUserPort) AwardPoints(ctx context.Context, userID uuid.UUID, problemID string, points int, solvedAt time.Time) (bool, error) {
	return false, nil
}

type fakeSalesforce struct {
	refreshCalls  int
	refreshErr    error
	refreshedWith *domain.SalesforceCredential
}

func (f *fakeSalesforce) Refresh(ctx context.Context, cred *domain.SalesforceCredential) (*domain.SalesforceCredential, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	refreshed := *cred
	refreshed.AccessToken = "refreshed-token"
	refreshed.IssuedAt = time.Now()
	f.refreshedWith = cred
	return &refreshed, nil
}

func (f *fakeSalesforce) FindArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name string) (*domain.ArtifactRef, error) {
	return nil, nil
}

func (f *fakeSalesforce) CreateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name, body, triggerObject string) (*domain.ArtifactRef, error) {
	return nil, nil
}

func (f *fakeSalesforce) UpdateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, id, body string) error {
	return nil
}

func (f *fakeSalesforce) RunTests(ctx context.Context, cred *domain.SalesforceCredential, testClassID string) ([]domain.TestMethodResult, error) {
	return nil, nil
}

func (f *fakeSalesforce) Query(ctx context.Context, cred *domain.SalesforceCredential, soql string) ([]map[string]interface{}, error) {
	return nil, nil
}

type fakeSalesforceAuth struct {
	exchanged *domain.SalesforceCredential
}

func (f *fakeSalesforceAuth) AuthCodeURL(state string) string {
	return "https://login.example.com/authorize?state=" + state
}

func (f *fakeSalesforceAuth) Exchange(ctx context.Context, code string) (*domain.SalesforceCredential, error) {
	if f.exchanged == nil {
		return nil, errors.New("exchange failed")
	}
	return f.exchanged, nil
}

func newTestService(userPort *fakeUserPort, sf *fakeSalesforce) IConnectionService {
	cfg := &config.SubmissionCfg{
		TokenMaxAge:  55 * time.Minute,
		PollInterval: time.Millisecond,
		PollAttempts: 20,
	}
	return NewConnectionService(userPort, sf, &fakeSalesforceAuth{}, cfg, nopLogger{})
}

func credIssuedAgo(age time.Duration) *domain.SalesforceCredential {
	return &domain.SalesforceCredential{
		AccessToken:  "token",
		RefreshToken: "refresh",
		InstanceURL:  "https://org.example.com",
		IssuedAt:     time.Now().Add(-age),
		Connected:    true,
	}
}

func TestEnsureConnection_FreshTokenIsNotRefreshed(t *testing.T) {
	userID := uuid.New()
	userPort := newFakeUserPort()
	userPort.creds[userID] = credIssuedAgo(54 * time.Minute)
	sf := &fakeSalesforce{}
	svc := newTestService(userPort, sf)

	cred, err := svc.EnsureConnection(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "token", cred.AccessToken)
	assert.Equal(t, 0, sf.refreshCalls)
	assert.Equal(t, 0, userPort.saveCalls)
}

func TestEnsureConnection_StaleTokenIsRefreshedAndSaved(t *testing.T) {
	userID := uuid.New()
	userPort := newFakeUserPort()
	userPort.creds[userID] = credIssuedAgo(56 * time.Minute)
	sf := &fakeSalesforce{}
	svc := newTestService(userPort, sf)

	cred, err := svc.EnsureConnection(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", cred.AccessToken)
	assert.Equal(t, 1, sf.refreshCalls)
	assert.Equal(t, 1, userPort.saveCalls)
	assert.Equal(t, "refreshed-token", userPort.creds[userID].AccessToken)
}

func TestEnsureConnection_RefreshFailureMarksDisconnected(t *testing.T) {
	userID := uuid.New()
	userPort := newFakeUserPort()
	userPort.creds[userID] = credIssuedAgo(2 * time.Hour)
	sf := &fakeSalesforce{refreshErr: errors.New("invalid_grant")}
	svc := newTestService(userPort, sf)

	_, err := svc.EnsureConnection(context.Background(), userID)
	require.ErrorIs(t, err, errs.RefreshFailed)
	require.Len(t, userPort.disconnected, 1)
	assert.Equal(t, userID, userPort.disconnected[0])

	// The next attempt finds a dead connection instead of retrying the
	// dead refresh token.
	_, err = svc.EnsureConnection(context.Background(), userID)
	require.ErrorIs(t, err, errs.NotConnected)
	assert.Equal(t, 1, sf.refreshCalls)
}

func TestEnsureConnection_NeverConnected(t *testing.T) {
	userPort := newFakeUserPort()
	svc := newTestService(userPort, &fakeSalesforce{})

	_, err := svc.EnsureConnection(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.NotConnected)
}

func TestCompleteConnection_SavesExchangedCredential(t *testing.T) {
	userID := uuid.New()
	userPort := newFakeUserPort()
	sfAuth := &fakeSalesforceAuth{exchanged: credIssuedAgo(0)}
	cfg := &config.SubmissionCfg{TokenMaxAge: 55 * time.Minute}
	svc := NewConnectionService(userPort, &fakeSalesforce{}, sfAuth, cfg, nopLogger{})

	require.NoError(t, svc.CompleteConnection(context.Background(), userID, "auth-code"))
	require.NotNil(t, userPort.creds[userID])
	assert.True(t, userPort.creds[userID].Connected)
}

func TestDisconnect(t *testing.T) {
	userID := uuid.New()
	userPort := newFakeUserPort()
	userPort.creds[userID] = credIssuedAgo(time.Minute)
	svc := newTestService(userPort, &fakeSalesforce{})

	require.NoError(t, svc.Disconnect(context.Background(), userID))
	assert.False(t, userPort.creds[userID].Connected)
}
