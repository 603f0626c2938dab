package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ROOMTIMES_SLACK_TOKEN", "shared-token")
	t.Setenv("ROOMTIMES_R25WS_URL", "https://r25.example.edu/r25ws/wrd/run")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default port, got %d", cfg.HTTPPort)
		}
		if cfg.SpacesDSN != "file:spaces.db" {
			t.Fatalf("expected default spaces DSN, got %q", cfg.SpacesDSN)
		}
		if cfg.UpstreamTimeout != 10*time.Second {
			t.Fatalf("expected default upstream timeout, got %v", cfg.UpstreamTimeout)
		}
		if cfg.CacheSize != 128 || cfg.CacheTTL != 30*time.Second {
			t.Fatalf("expected default cache settings, got %d/%v", cfg.CacheSize, cfg.CacheTTL)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ROOMTIMES_HTTP_PORT", "9001")
		t.Setenv("ROOMTIMES_R25WS_USER", "wsuser")
		t.Setenv("ROOMTIMES_R25WS_PASS", "wspass")
		t.Setenv("ROOMTIMES_SPACES_DSN", "file:/var/lib/roomtimes/spaces.db")
		t.Setenv("ROOMTIMES_UPSTREAM_TIMEOUT", "5s")
		t.Setenv("ROOMTIMES_CACHE_SIZE", "0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.HTTPPort != 9001 {
			t.Fatalf("expected port override, got %d", cfg.HTTPPort)
		}
		if cfg.R25Username != "wsuser" || cfg.R25Password != "wspass" {
			t.Fatalf("expected credentials, got %q/%q", cfg.R25Username, cfg.R25Password)
		}
		if cfg.UpstreamTimeout != 5*time.Second {
			t.Fatalf("expected timeout override, got %v", cfg.UpstreamTimeout)
		}
		if cfg.CacheSize != 0 {
			t.Fatalf("expected cache disabled, got %d", cfg.CacheSize)
		}
	})

	t.Run("reports all missing values together", func(t *testing.T) {
		t.Setenv("ROOMTIMES_SLACK_TOKEN", "")
		t.Setenv("ROOMTIMES_R25WS_URL", "")

		_, err := Load()
		if err == nil {
			t.Fatal("expected an error for missing required values")
		}
		if !strings.Contains(err.Error(), "ROOMTIMES_SLACK_TOKEN") ||
			!strings.Contains(err.Error(), "ROOMTIMES_R25WS_URL") {
			t.Fatalf("expected both missing variables to be named, got %v", err)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ROOMTIMES_HTTP_PORT", "not-a-port")

		_, err := Load()
		if err == nil {
			t.Fatal("expected an error for an invalid port")
		}
		if !strings.Contains(err.Error(), "ROOMTIMES_HTTP_PORT") {
			t.Fatalf("expected the invalid variable to be named, got %v", err)
		}
	})
}
