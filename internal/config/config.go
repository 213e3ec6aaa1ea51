package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings read from config.toml.
type Config struct {
	APIURL                string
	SessionPath           string
	LogFile               string
	LogLevel              string
	NotificationSeconds   int
	RefreshSeconds        int
	RequestTimeoutSeconds int
}

const (
	DefaultConfigPath = "~/.config/bloglist/config.toml"

	defaultAPIURL         = "http://localhost:3003"
	defaultSessionPath    = "~/.config/bloglist/session.toml"
	defaultLogFile        = "~/.local/state/bloglist/bloglist.log"
	defaultLogLevel       = "info"
	defaultNotifySeconds  = 5
	defaultTimeoutSeconds = 5
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:                defaultAPIURL,
		SessionPath:           mustExpand(defaultSessionPath),
		LogFile:               mustExpand(defaultLogFile),
		LogLevel:              defaultLogLevel,
		NotificationSeconds:   defaultNotifySeconds,
		RequestTimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Load reads the config file at path, or the default location when path is
// blank. A missing file yields Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		SessionPath           string `toml:"session_path"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
		NotificationSeconds   *int   `toml:"notification_seconds"`
		RefreshSeconds        *int   `toml:"refresh_seconds"`
		RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.NotificationSeconds != nil {
		cfg.NotificationSeconds = *raw.NotificationSeconds
	}
	if raw.RefreshSeconds != nil {
		cfg.RefreshSeconds = *raw.RefreshSeconds
	}
	if raw.RequestTimeoutSeconds != nil {
		cfg.RequestTimeoutSeconds = *raw.RequestTimeoutSeconds
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative durations.
func (c Config) Validate() error {
	switch {
	case c.NotificationSeconds < 0:
		return fmt.Errorf("notification_seconds must be >= 0, got %d", c.NotificationSeconds)
	case c.RefreshSeconds < 0:
		return fmt.Errorf("refresh_seconds must be >= 0, got %d", c.RefreshSeconds)
	case c.RequestTimeoutSeconds < 0:
		return fmt.Errorf("request_timeout_seconds must be >= 0, got %d", c.RequestTimeoutSeconds)
	}
	return nil
}

// NotifyFor is how long a notification stays visible. Zero keeps it until
// the next one replaces it.
func (c Config) NotifyFor() time.Duration {
	return time.Duration(c.NotificationSeconds) * time.Second
}

// RefreshInterval is the background reload period; zero disables polling.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// RequestTimeout bounds each HTTP request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(DefaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
