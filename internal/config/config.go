package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process-wide settings. It is loaded once at startup and
// treated as read-only afterward.
type Config struct {
	SessionSecret   string
	PageSize        int
	SessionTTL      time.Duration
	MaxFailedLogins int
	TMDBAPIKey      string
	DatabasePath    string
	ListenAddr      string
	StaticDir       string
}

const (
	DefaultPath         = "config/app.conf"
	defaultDatabasePath = "data/app.db"
	defaultListenAddr   = ":8080"
	defaultStaticDir    = "public"
)

// Load reads and validates a line-oriented "key:value" configuration file.
// Missing required keys or out-of-range values are reported as errors; the
// caller is expected to abort startup.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration file %s: %w", path, err)
	}

	values := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed configuration line %q", line)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	cfg := &Config{
		SessionSecret: values["session_secret"],
		TMDBAPIKey:    values["tmdb_api_key"],
		DatabasePath:  values["database_path"],
		ListenAddr:    values["listen_addr"],
		StaticDir:     values["static_dir"],
	}

	if n := len(cfg.SessionSecret); n < 75 || n > 100 {
		return nil, fmt.Errorf("session_secret must be between 75 and 100 characters (got %d)", n)
	}

	pageSize, err := intInRange(values, "page_size", 5, 20)
	if err != nil {
		return nil, err
	}
	cfg.PageSize = pageSize

	ttlMinutes, err := intInRange(values, "session_ttl_minutes", 5, 30)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	maxFailed, err := intInRange(values, "max_failed_logins", 3, 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxFailedLogins = maxFailed

	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("tmdb_api_key is required")
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = defaultStaticDir
	}

	return cfg, nil
}

func intInRange(values map[string]string, key string, min, max int) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number between %d and %d (got %q)", key, min, max, raw)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s must be between %d and %d (got %d)", key, min, max, n)
	}
	return n, nil
}
