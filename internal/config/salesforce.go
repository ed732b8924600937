package config

import "os"

type SalesforceConfig struct {
	LoginURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIVersion   string
}

func NewSalesforceConfig() *SalesforceConfig {
	loginURL := os.Getenv("SF_LOGIN_URL")
	if loginURL == "" {
		loginURL = "https://login.salesforce.com"
	}
	apiVersion := os.Getenv("SF_API_VERSION")
	if apiVersion == "" {
		apiVersion = "v58.0"
	}
	return &SalesforceConfig{
		LoginURL:     loginURL,
		ClientID:     os.Getenv("SF_CLIENT_ID"),
		ClientSecret: os.Getenv("SF_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("SF_REDIRECT_URI"),
		APIVersion:   apiVersion,
	}
}
