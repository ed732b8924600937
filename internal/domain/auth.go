package domain

type Provider string

const (
	ProviderLocal      Provider = "local"
	ProviderSalesforce Provider = "salesforce"
)

type AuthPayload struct {
	UserID     string   `json:"user_id"`
	Username   string   `json:"username"`
	Permission []string `json:"permission"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
