package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
search:
  origin: "New York"
  destination: LAX
  travel_date: "2025-09-15"
  passengers: 2
  cabin_class: business
  sort_by: duration

sources:
  primary: kayak
  fallback:
    - expedia
    - demo

settings:
  max_attempts: 5
  attempt_timeout: 4s
  backoff: exponential
  backoff_delay: 500ms
  fallback_policy: first_non_empty

cache:
  enabled: true
  ttl: 10m

history:
  enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Search.Origin != "New York" {
		t.Errorf("Origin = %q", cfg.Search.Origin)
	}
	if cfg.Search.Passengers != 2 {
		t.Errorf("Passengers = %d, want 2", cfg.Search.Passengers)
	}

	chain := cfg.Chain()
	want := []string{"kayak", "expedia", "demo"}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain = %v, want %v", chain, want)
		}
	}

	if cfg.Settings.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Settings.MaxAttempts)
	}
	if cfg.Settings.AttemptTimeout.Std() != 4*time.Second {
		t.Errorf("AttemptTimeout = %v, want 4s", cfg.Settings.AttemptTimeout.Std())
	}
	if cfg.Settings.Backoff != "exponential" {
		t.Errorf("Backoff = %q", cfg.Settings.Backoff)
	}
	if cfg.Settings.BackoffDelay.Std() != 500*time.Millisecond {
		t.Errorf("BackoffDelay = %v, want 500ms", cfg.Settings.BackoffDelay.Std())
	}
	if cfg.Cache.TTL.Std() != 10*time.Minute {
		t.Errorf("TTL = %v, want 10m", cfg.Cache.TTL.Std())
	}
	if !cfg.Browser.Headless {
		t.Error("Headless should default to true")
	}
}

func TestLoadDefaults(t *testing.T) {
	minimal := `
search:
  origin: NYC
  destination: LAX
  travel_date: "2025-09-15"
sources:
  primary: demo
`
	cfg, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Settings.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Settings.MaxAttempts)
	}
	if cfg.Settings.Backoff != "fixed" {
		t.Errorf("Backoff = %q, want fixed", cfg.Settings.Backoff)
	}
	if cfg.Settings.FallbackPolicy != "first_reachable" {
		t.Errorf("FallbackPolicy = %q, want first_reachable", cfg.Settings.FallbackPolicy)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should default to disabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_TTL", "30s")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if !cfg.Cache.Enabled {
		t.Error("CACHE_ENABLED override ignored")
	}
	if cfg.Cache.TTL.Std() != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.Cache.TTL.Std())
	}
}

func TestLoadMissingPrimary(t *testing.T) {
	if _, err := Load(writeConfig(t, "search:\n  origin: NYC\n")); err == nil {
		t.Error("Load should fail without sources.primary")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestDurationRejectsGarbage(t *testing.T) {
	bad := `
sources:
  primary: demo
settings:
  attempt_timeout: soon
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("Load should reject an unparsable duration")
	}
}
