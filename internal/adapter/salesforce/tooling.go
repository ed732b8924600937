package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/codbbit.net/internal/domain"
)

func (c *Client) toolingPath(suffix string) string {
	return "/services/data/" + c.cfg.APIVersion + "/tooling" + suffix
}

func (c *Client) dataPath(suffix string) string {
	return "/services/data/" + c.cfg.APIVersion + suffix
}

// escapeSOQL escapes a value for embedding in a quoted SOQL literal.
func escapeSOQL(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

// FindArtifact looks an artifact up by name in the Tooling metadata
// catalog, returning nil when nothing matches.
func (c *Client) FindArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name string) (*domain.ArtifactRef, error) {
	soql := fmt.Sprintf("SELECT Id, Name FROM %s WHERE Name = '%s' LIMIT 1", kind, escapeSOQL(name))
	raw, err := c.Call(ctx, cred, http.MethodGet, c.toolingPath("/query/?q="+url.QueryEscape(soql)), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Records []struct {
			Id   string `json:"Id"`
			Name string `json:"Name"`
		} `json:"records"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing artifact query response: %w", err)
	}
	if len(result.Records) == 0 {
		return nil, nil
	}
	return &domain.ArtifactRef{
		ID:   result.Records[0].Id,
		Kind: kind,
		Name: result.Records[0].Name,
	}, nil
}

// CreateArtifact deploys a new class or trigger body under the given
// name.
func (c *Client) CreateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, name, body, triggerObject string) (*domain.ArtifactRef, error) {
	payload := map[string]interface{}{
		"Name": name,
		"Body": body,
	}
	if kind == domain.ArtifactApexTrigger {
		payload["TableEnumOrId"] = triggerObject
	}

	raw, err := c.Call(ctx, cred, http.MethodPost, c.toolingPath("/sobjects/"+string(kind)+"/"), payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Id      string `json:"id"`
		Success bool   `json:"success"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing artifact create response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("platform reported unsuccessful create for %s %s", kind, name)
	}
	return &domain.ArtifactRef{ID: result.Id, Kind: kind, Name: name}, nil
}

// UpdateArtifact replaces the body of an existing artifact.
func (c *Client) UpdateArtifact(ctx context.Context, cred *domain.SalesforceCredential, kind domain.ArtifactKind, id, body string) error {
	_, err := c.Call(ctx, cred, http.MethodPatch, c.toolingPath("/sobjects/"+string(kind)+"/"+id), map[string]interface{}{
		"Body": body,
	})
	return err
}

// Query runs a SOQL query through the data API, stripping the
// per-record attributes envelope.
func (c *Client) Query(ctx context.Context, cred *domain.SalesforceCredential, soql string) ([]map[string]interface{}, error) {
	raw, err := c.Call(ctx, cred, http.MethodGet, c.dataPath("/query/?q="+url.QueryEscape(soql)), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing query response: %w", err)
	}
	for _, record := range result.Records {
		delete(record, "attributes")
	}
	return result.Records, nil
}
