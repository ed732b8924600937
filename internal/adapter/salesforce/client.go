package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/codbbit.net/internal/config"
	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

var _ secondary.SalesforcePort = (*Client)(nil)
var _ secondary.SalesforceAuthPort = (*Client)(nil)

// Client talks to the platform's OAuth, Tooling and data APIs with a
// per-call bearer credential. It performs no retries of its own; the
// only waiting loop lives in RunTests.
type Client struct {
	httpClient   *http.Client
	cfg          *config.SalesforceConfig
	pollInterval time.Duration
	pollAttempts int
	logger       primary.Logger
}

func New(cfg *config.SalesforceConfig, subCfg *config.SubmissionCfg, logger primary.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:          cfg,
		pollInterval: subCfg.PollInterval,
		pollAttempts: subCfg.PollAttempts,
		logger:       logger,
	}
}

// Call issues one bearer-authenticated JSON request against the
// credential's instance. A non-2xx response becomes a *errs.RemoteError
// carrying the message the platform sent; a 204 yields a nil payload.
func (c *Client) Call(ctx context.Context, cred *domain.SalesforceCredential, method, path string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, cred.InstanceURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(data),
		}
	}

	return data, nil
}

// extractMessage digs the human-readable message out of an error body.
// The platform answers with either a JSON array of error objects or a
// single object.
func extractMessage(data []byte) string {
	var arr []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(data, &arr); err == nil && len(arr) > 0 && arr[0].Message != "" {
		return arr[0].Message
	}

	var obj struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.ErrorDescription != "" {
			return obj.ErrorDescription
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	return "unexpected error response from Salesforce"
}
