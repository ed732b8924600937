package config

import "os"

type AppConfig struct {
	DebugMode        bool
	SubmissionCfg    *SubmissionCfg
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	SalesforceConfig *SalesforceConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:        os.Getenv("DEBUG_MODE") == "true",
		SubmissionCfg:    NewSubmissionCfg(),
		RedisConfig:      NewRedisConfig(),
		PostgresConfig:   NewPostgresConfig(),
		JwtConfig:        NewJwtConfig(),
		SalesforceConfig: NewSalesforceConfig(),
	}
}
