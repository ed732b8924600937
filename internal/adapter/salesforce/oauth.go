package salesforce

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"gitlab.com/codbbit.net/internal/domain"
)

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURI,
		Scopes:       []string{"api", "refresh_token"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.cfg.LoginURL + "/services/oauth2/authorize",
			TokenURL: c.cfg.LoginURL + "/services/oauth2/token",
		},
	}
}

// AuthCodeURL builds the authorization redirect for the connect
// handshake.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig().AuthCodeURL(state)
}

// Exchange trades the callback code for a connected credential.
func (c *Client) Exchange(ctx context.Context, code string) (*domain.SalesforceCredential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	cred := credentialFromToken(token, &domain.SalesforceCredential{})
	if cred.InstanceURL == "" {
		return nil, fmt.Errorf("token response carried no instance_url")
	}
	return cred, nil
}

// Refresh exchanges the stored refresh token for a new access token.
// Callers persist the result; a failure here is terminal for the
// session (the connection manager marks the org disconnected).
func (c *Client) Refresh(ctx context.Context, cred *domain.SalesforceCredential) (*domain.SalesforceCredential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	source := c.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}
	return credentialFromToken(token, cred), nil
}

// credentialFromToken merges a token response into the previous
// credential: the refresh token and instance URL are replaced only when
// the response supplies them.
func credentialFromToken(token *oauth2.Token, prev *domain.SalesforceCredential) *domain.SalesforceCredential {
	next := *prev
	next.AccessToken = token.AccessToken
	next.IssuedAt = time.Now()
	next.Connected = true
	if token.RefreshToken != "" {
		next.RefreshToken = token.RefreshToken
	}
	if instanceURL, ok := token.Extra("instance_url").(string); ok && instanceURL != "" {
		next.InstanceURL = instanceURL
	}
	return &next
}
