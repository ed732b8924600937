package salesforce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func testClient(pollInterval time.Duration, pollAttempts int) *Client {
	return New(
		&config.SalesforceConfig{LoginURL: "https://login.example.com", APIVersion: "v58.0"},
		&config.SubmissionCfg{TokenMaxAge: 55 * time.Minute, PollInterval: pollInterval, PollAttempts: pollAttempts},
		nopLogger{},
	)
}

func testCredential(instanceURL string) *domain.SalesforceCredential {
	return &domain.SalesforceCredential{
		AccessToken: "sekret-token",
		InstanceURL: instanceURL,
		IssuedAt:    time.Now(),
		Connected:   true,
	}
}

func TestCall_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	_, err := client.Call(context.Background(), testCredential(srv.URL), http.MethodGet, "/anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekret-token", gotAuth)
}

func TestCall_NoContentYieldsNilPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	raw, err := client.Call(context.Background(), testCredential(srv.URL), http.MethodPatch, "/anything", map[string]string{"Body": "x"})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCall_ErrorArrayBecomesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"message":"line 3: unexpected token: '}'","errorCode":"INVALID_BODY"}]`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	_, err := client.Call(context.Background(), testCredential(srv.URL), http.MethodPost, "/anything", nil)

	var remote *errs.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "line 3: unexpected token: '}'", remote.Message)
}

func TestCall_ErrorObjectBecomesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"expired access/refresh token"}`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	_, err := client.Call(context.Background(), testCredential(srv.URL), http.MethodGet, "/anything", nil)

	var remote *errs.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "expired access/refresh token", remote.Message)
}

func TestFindArtifact_NoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	ref, err := client.FindArtifact(context.Background(), testCredential(srv.URL), domain.ArtifactApexClass, "Missing")
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestFindArtifact_Match(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "ApexTrigger")
		w.Write([]byte(`{"records":[{"Id":"01q000000000001","Name":"AccountAudit"}]}`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	ref, err := client.FindArtifact(context.Background(), testCredential(srv.URL), domain.ArtifactApexTrigger, "AccountAudit")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "01q000000000001", ref.ID)
	assert.Equal(t, domain.ArtifactApexTrigger, ref.Kind)
}

func TestQuery_StripsAttributes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"attributes":{"type":"Account"},"Name":"Acme"}]}`))
	}))
	defer srv.Close()

	client := testClient(time.Millisecond, 1)
	records, err := client.Query(context.Background(), testCredential(srv.URL), "SELECT Name FROM Account")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]interface{}{"Name": "Acme"}, records[0])
}
