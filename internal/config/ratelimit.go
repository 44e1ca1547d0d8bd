package config

import (
	"os"
	"strconv"
	"time"
)

// LoginRateConfig controls the fixed-window rate limiter applied to login
// attempts. MaxAttempts failed-or-successful POSTs per client IP are allowed
// within each Window; further attempts are rejected until the window rolls
// over. Disabled or a missing Redis client turns the limiter off.
type LoginRateConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
	Prefix      string
}

// LoadLoginRateConfig reads LOGIN_RATE_* environment variables and applies
// sane floors so a misconfigured deployment never locks everyone out.
func LoadLoginRateConfig() LoginRateConfig {
	cfg := LoginRateConfig{
		Enabled:     rlBool("LOGIN_RATE_ENABLED", true),
		MaxAttempts: rlInt("LOGIN_RATE_MAX_ATTEMPTS", 10),
		Window:      rlDur("LOGIN_RATE_WINDOW", time.Minute),
		Prefix:      rlStr("LOGIN_RATE_PREFIX", "loginrl"),
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func rlStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func rlBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func rlInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func rlDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
