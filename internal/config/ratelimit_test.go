package config

import (
	"testing"
	"time"
)

func TestLoadLoginRateConfigDefaults(t *testing.T) {
	t.Setenv("LOGIN_RATE_ENABLED", "")
	t.Setenv("LOGIN_RATE_MAX_ATTEMPTS", "")
	t.Setenv("LOGIN_RATE_WINDOW", "")
	t.Setenv("LOGIN_RATE_PREFIX", "")

	cfg := LoadLoginRateConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.MaxAttempts != 10 {
		t.Errorf("MaxAttempts = %d, want 10", cfg.MaxAttempts)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want 1m", cfg.Window)
	}
	if cfg.Prefix != "loginrl" {
		t.Errorf("Prefix = %q, want loginrl", cfg.Prefix)
	}
}

func TestLoadLoginRateConfigOverrides(t *testing.T) {
	t.Setenv("LOGIN_RATE_ENABLED", "false")
	t.Setenv("LOGIN_RATE_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_RATE_WINDOW", "30s")
	t.Setenv("LOGIN_RATE_PREFIX", "rl")

	cfg := LoadLoginRateConfig()
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.Window != 30*time.Second {
		t.Errorf("Window = %v, want 30s", cfg.Window)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("Prefix = %q, want rl", cfg.Prefix)
	}
}

func TestLoadLoginRateConfigFloors(t *testing.T) {
	t.Setenv("LOGIN_RATE_MAX_ATTEMPTS", "0")
	t.Setenv("LOGIN_RATE_WINDOW", "-5s")

	cfg := LoadLoginRateConfig()
	if cfg.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want floor of 1", cfg.MaxAttempts)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want fallback of 1m", cfg.Window)
	}
}

func TestLoadLoginRateConfigBadValues(t *testing.T) {
	t.Setenv("LOGIN_RATE_MAX_ATTEMPTS", "lots")
	t.Setenv("LOGIN_RATE_WINDOW", "soon")
	t.Setenv("LOGIN_RATE_ENABLED", "maybe")

	cfg := LoadLoginRateConfig()
	if cfg.MaxAttempts != 10 {
		t.Errorf("MaxAttempts = %d, want default 10", cfg.MaxAttempts)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want default 1m", cfg.Window)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false, want default true on unparseable value")
	}
}
