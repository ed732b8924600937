package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codbbit.net/internal/adapter/crypto"
	"gitlab.com/codbbit.net/internal/config"
	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/handlers"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeConnections struct {
	completed []uuid.UUID
}

func (f *fakeConnections) EnsureConnection(ctx context.Context, userID uuid.UUID) (*domain.SalesforceCredential, error) {
	return nil, nil
}

func (f *fakeConnections) ConnectURL(state string) string {
	return "https://login.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeConnections) CompleteConnection(ctx context.Context, userID uuid.UUID, code string) error {
	f.completed = append(f.completed, userID)
	return nil
}

func (f *fakeConnections) Disconnect(ctx context.Context, userID uuid.UUID) error { return nil }

func newTestHandler() (*Handler, *fakeConnections, primary.JWTService) {
	jwtProvider := crypto.NewJWTService(&config.JwtConfig{Secret: "test-secret"})
	connections := &fakeConnections{}
	return NewHandler(nil, connections, jwtProvider, nopLogger{}), connections, jwtProvider
}

func signedState(t *testing.T, jwtProvider primary.JWTService, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	state, err := jwtProvider.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"user_id": userID.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	require.NoError(t, err)
	return state
}

func TestSalesforceCallback_RejectsRawUserIDState(t *testing.T) {
	handler, connections, _ := newTestHandler()
	victim := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/salesforce/callback?code=abc&state="+victim.String(), nil)
	rec := httptest.NewRecorder()
	handler.SalesforceCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, connections.completed)
}

func TestSalesforceCallback_AcceptsSignedState(t *testing.T) {
	handler, connections, jwtProvider := newTestHandler()
	userID := uuid.New()
	state := signedState(t, jwtProvider, userID, connectStateTTL)

	req := httptest.NewRequest(http.MethodGet, "/api/salesforce/callback?code=abc&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	handler.SalesforceCallback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, connections.completed, 1)
	assert.Equal(t, userID, connections.completed[0])
}

func TestSalesforceCallback_RejectsExpiredState(t *testing.T) {
	handler, connections, jwtProvider := newTestHandler()
	state := signedState(t, jwtProvider, uuid.New(), -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/salesforce/callback?code=abc&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	handler.SalesforceCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, connections.completed)
}

func TestSalesforceCallback_RejectsStateSignedWithOtherSecret(t *testing.T) {
	handler, connections, _ := newTestHandler()
	otherProvider := crypto.NewJWTService(&config.JwtConfig{Secret: "attacker-secret"})
	state := signedState(t, otherProvider, uuid.New(), connectStateTTL)

	req := httptest.NewRequest(http.MethodGet, "/api/salesforce/callback?code=abc&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	handler.SalesforceCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, connections.completed)
}

// TestSalesforceConnect_StateRoundTrips drives the connect redirect
// through the JWT middleware and checks the emitted state verifies back
// to the same user at the callback.
func TestSalesforceConnect_StateRoundTrips(t *testing.T) {
	handler, connections, jwtProvider := newTestHandler()
	userID := uuid.New()

	session, err := jwtProvider.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"user_id":  userID.String(),
		"username": "astro",
	})
	require.NoError(t, err)

	middleware := handlers.NewMiddleware(jwtProvider, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/salesforce/connect", nil)
	req.Header.Set("Authorization", "Bearer "+session)
	rec := httptest.NewRecorder()
	middleware.JWTMiddleware(http.HandlerFunc(handler.SalesforceConnect)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	cbReq := httptest.NewRequest(http.MethodGet, "/api/salesforce/callback?code=abc&state="+url.QueryEscape(state), nil)
	cbRec := httptest.NewRecorder()
	handler.SalesforceCallback(cbRec, cbReq)

	assert.Equal(t, http.StatusOK, cbRec.Code)
	require.Len(t, connections.completed, 1)
	assert.Equal(t, userID, connections.completed[0])
}
