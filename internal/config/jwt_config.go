package config

import "os"

// JwtConfig holds the HMAC secret used for session tokens and signed
// connect states.
type JwtConfig struct {
	Secret string
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret: os.Getenv("JWT_SECRET"),
	}
}
