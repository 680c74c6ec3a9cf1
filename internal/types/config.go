package types

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// SeniorTeamPolicy selects how the senior national team is picked among career rows
type SeniorTeamPolicy string

const (
	// PolicyRegistry keeps rows whose team is in KnownTeams and takes the last one
	PolicyRegistry SeniorTeamPolicy = "registry"
	// PolicyExclusion drops youth/olympic/ambiguous teams and takes the first one
	PolicyExclusion SeniorTeamPolicy = "exclusion"
)

// ParseSeniorTeamPolicy validates a policy name
func ParseSeniorTeamPolicy(s string) (SeniorTeamPolicy, error) {
	switch p := SeniorTeamPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyRegistry, PolicyExclusion:
		return p, nil
	}
	return "", fmt.Errorf("unknown senior team policy %q", s)
}

// Config holds the configuration for the extractor
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	UseHeadlessBrowser    bool
	UserAgent             string
	SeniorTeamPolicy      SeniorTeamPolicy
	MaxPages              int  // 0 means unlimited
	ExpectedPages         uint // sizing hint for the visited-URL filter
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 5,
		UseHeadlessBrowser:    false,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		SeniorTeamPolicy:      PolicyRegistry,
		ExpectedPages:         10_000,
	}
}

// ApplyEnv overrides fields from environment variables that are set.
// A value that fails to parse is reported and leaves the field untouched.
func (c *Config) ApplyEnv() error {
	var errs []string

	if v, ok := os.LookupEnv("REQUEST_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestDelay = d
		} else {
			errs = append(errs, "REQUEST_DELAY: "+err.Error())
		}
	}
	if v, ok := os.LookupEnv("REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		} else {
			errs = append(errs, "REQUEST_TIMEOUT: "+err.Error())
		}
	}
	if v, ok := os.LookupEnv("MAX_RETRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		} else {
			errs = append(errs, "MAX_RETRIES: "+err.Error())
		}
	}
	if v, ok := os.LookupEnv("MAX_CONCURRENT_REQUESTS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxConcurrentRequests = n
		} else {
			errs = append(errs, "MAX_CONCURRENT_REQUESTS: must be a positive integer")
		}
	}
	if v, ok := os.LookupEnv("MAX_PAGES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxPages = n
		} else {
			errs = append(errs, "MAX_PAGES: must be a non-negative integer")
		}
	}
	if v, ok := os.LookupEnv("USE_HEADLESS_BROWSER"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseHeadlessBrowser = b
		} else {
			errs = append(errs, "USE_HEADLESS_BROWSER: "+err.Error())
		}
	}
	if v, ok := os.LookupEnv("SENIOR_TEAM_POLICY"); ok {
		if p, err := ParseSeniorTeamPolicy(v); err == nil {
			c.SeniorTeamPolicy = p
		} else {
			errs = append(errs, "SENIOR_TEAM_POLICY: "+err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}
