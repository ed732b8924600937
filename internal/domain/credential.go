package domain

import "time"

// SalesforceCredential is the OAuth state of a user's connected org.
// A credential is usable only while Connected is true; an access token
// older than the freshness threshold must be refreshed before use.
type SalesforceCredential struct {
	AccessToken  string    `db:"sf_access_token"`
	RefreshToken string    `db:"sf_refresh_token"`
	InstanceURL  string    `db:"sf_instance_url"`
	IssuedAt     time.Time `db:"sf_issued_at"`
	Connected    bool      `db:"sf_connected"`
}

// Age reports how long ago the access token was issued.
func (c *SalesforceCredential) Age(now time.Time) time.Duration {
	return now.Sub(c.IssuedAt)
}

type CredentialTable struct {
	AccessToken  string
	RefreshToken string
	InstanceURL  string
	IssuedAt     string
	Connected    string
}

func GetCredentialTable() CredentialTable {
	return CredentialTable{
		AccessToken:  "sf_access_token",
		RefreshToken: "sf_refresh_token",
		InstanceURL:  "sf_instance_url",
		IssuedAt:     "sf_issued_at",
		Connected:    "sf_connected",
	}
}
