package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSubmissionCfg_Defaults(t *testing.T) {
	t.Setenv("SF_TOKEN_MAX_AGE_MIN", "")
	t.Setenv("TEST_RUN_POLL_ATTEMPTS", "")
	t.Setenv("TEST_RUN_POLL_INTERVAL_MS", "")

	cfg := NewSubmissionCfg()
	assert.Equal(t, 55*time.Minute, cfg.TokenMaxAge)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 20, cfg.PollAttempts)
}

func TestNewSubmissionCfg_EnvOverrides(t *testing.T) {
	t.Setenv("SF_TOKEN_MAX_AGE_MIN", "30")
	t.Setenv("TEST_RUN_POLL_ATTEMPTS", "5")
	t.Setenv("TEST_RUN_POLL_INTERVAL_MS", "250")

	cfg := NewSubmissionCfg()
	assert.Equal(t, 30*time.Minute, cfg.TokenMaxAge)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5, cfg.PollAttempts)
}
