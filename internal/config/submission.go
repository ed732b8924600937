package config

import (
	"os"
	"strconv"
	"time"
)

type SubmissionCfg struct {
	// TokenMaxAge is how old an access token may be before the
	// connection manager refreshes it.
	TokenMaxAge time.Duration
	// PollInterval and PollAttempts bound the test-run polling loop.
	PollInterval time.Duration
	PollAttempts int
}

func NewSubmissionCfg() *SubmissionCfg {
	tokenMaxAgeMin := os.Getenv("SF_TOKEN_MAX_AGE_MIN")
	varInt, err := strconv.Atoi(tokenMaxAgeMin)
	if err != nil {
		varInt = 55
	}
	pollAttempts := os.Getenv("TEST_RUN_POLL_ATTEMPTS")
	varInt2, err := strconv.Atoi(pollAttempts)
	if err != nil {
		varInt2 = 20
	}
	pollIntervalMs := os.Getenv("TEST_RUN_POLL_INTERVAL_MS")
	varInt3, err := strconv.Atoi(pollIntervalMs)
	if err != nil {
		varInt3 = 1000
	}
	return &SubmissionCfg{
		TokenMaxAge:  time.Duration(varInt) * time.Minute,
		PollInterval: time.Duration(varInt3) * time.Millisecond,
		PollAttempts: varInt2,
	}
}
