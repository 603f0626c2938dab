package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the room times
// service.
type Config struct {
	HTTPPort int

	// SlackToken is the shared secret expected on every inbound webhook.
	SlackToken string

	// R25BaseURL is the reservation web service root.
	R25BaseURL  string
	R25Username string
	R25Password string

	// SpacesDSN locates the SQLite database holding the space directory.
	SpacesDSN string

	UpstreamTimeout time.Duration
	DeliveryTimeout time.Duration

	CacheSize int
	CacheTTL  time.Duration
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to sensible defaults; required values are
// validated and reported together so a misconfigured deployment fails with
// one complete message.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		SpacesDSN:       "file:spaces.db",
		UpstreamTimeout: 10 * time.Second,
		DeliveryTimeout: 30 * time.Second,
		CacheSize:       128,
		CacheTTL:        30 * time.Second,
	}

	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROOMTIMES_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROOMTIMES_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if token := strings.TrimSpace(os.Getenv("ROOMTIMES_SLACK_TOKEN")); token == "" {
		missing = append(missing, "ROOMTIMES_SLACK_TOKEN")
	} else {
		cfg.SlackToken = token
	}

	if baseURL := strings.TrimSpace(os.Getenv("ROOMTIMES_R25WS_URL")); baseURL == "" {
		missing = append(missing, "ROOMTIMES_R25WS_URL")
	} else {
		cfg.R25BaseURL = baseURL
	}

	cfg.R25Username = strings.TrimSpace(os.Getenv("ROOMTIMES_R25WS_USER"))
	cfg.R25Password = os.Getenv("ROOMTIMES_R25WS_PASS")

	if dsn := strings.TrimSpace(os.Getenv("ROOMTIMES_SPACES_DSN")); dsn != "" {
		cfg.SpacesDSN = dsn
	}

	if value := strings.TrimSpace(os.Getenv("ROOMTIMES_UPSTREAM_TIMEOUT")); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "ROOMTIMES_UPSTREAM_TIMEOUT")
		} else {
			cfg.UpstreamTimeout = timeout
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMTIMES_DELIVERY_TIMEOUT")); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "ROOMTIMES_DELIVERY_TIMEOUT")
		} else {
			cfg.DeliveryTimeout = timeout
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMTIMES_CACHE_SIZE")); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil || size < 0 {
			invalid = append(invalid, "ROOMTIMES_CACHE_SIZE")
		} else {
			cfg.CacheSize = size
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMTIMES_CACHE_TTL")); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROOMTIMES_CACHE_TTL")
		} else {
			cfg.CacheTTL = ttl
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
