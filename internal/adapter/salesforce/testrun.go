package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

// RunTests triggers an asynchronous run of the test class and polls
// for its result records. The run is considered finished once at least
// one record exists and every record is terminal; a partial result set
// with non-terminal records keeps the loop going. The polling budget is
// a hard ceiling: the run is never re-triggered and the interval never
// escalates.
func (c *Client) RunTests(ctx context.Context, cred *domain.SalesforceCredential, testClassID string) ([]domain.TestMethodResult, error) {
	raw, err := c.Call(ctx, cred, http.MethodPost, c.toolingPath("/runTestsAsynchronous/"), map[string]interface{}{
		"classids": testClassID,
	})
	if err != nil {
		return nil, err
	}

	var runID string
	if err := json.Unmarshal(raw, &runID); err != nil {
		return nil, fmt.Errorf("parsing test run id: %w", err)
	}

	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		results, err := c.queryTestResults(ctx, cred, runID)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 && allTerminal(results) {
			return results, nil
		}
	}

	c.logger.Warn("Test run did not finish within polling budget", "run_id", runID, "attempts", c.pollAttempts)
	return nil, errs.TestRunTimeout
}

func (c *Client) queryTestResults(ctx context.Context, cred *domain.SalesforceCredential, runID string) ([]domain.TestMethodResult, error) {
	soql := fmt.Sprintf(
		"SELECT MethodName, Status, Outcome, Message, StackTrace FROM ApexTestResult WHERE AsyncApexJobId = '%s'",
		escapeSOQL(runID),
	)
	raw, err := c.Call(ctx, cred, http.MethodGet, c.toolingPath("/query/?q="+url.QueryEscape(soql)), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Records []domain.TestMethodResult `json:"records"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing test result response: %w", err)
	}
	return result.Records, nil
}

func allTerminal(results []domain.TestMethodResult) bool {
	for _, r := range results {
		if !r.Terminal() {
			return false
		}
	}
	return true
}
