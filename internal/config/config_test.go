package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.SessionPath != filepath.Join(home, ".config/bloglist/session.toml") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
	if cfg.LogFile != filepath.Join(home, ".local/state/bloglist/bloglist.log") {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
	if cfg.NotifyFor() != 5*time.Second {
		t.Fatalf("NotifyFor = %v, want 5s", cfg.NotifyFor())
	}
	if cfg.RefreshInterval() != 0 {
		t.Fatalf("RefreshInterval = %v, want polling off", cfg.RefreshInterval())
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", cfg.RequestTimeout())
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://blogs.example.com  "
session_path = "  ~/sess.toml  "
log_level = " DEBUG "
notification_seconds = 0
refresh_seconds = 30
request_timeout_seconds = 12
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://blogs.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.SessionPath != filepath.Join(home, "sess.toml") {
		t.Fatalf("SessionPath = %q, want it under HOME %q", cfg.SessionPath, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.NotifyFor() != 0 {
		t.Fatalf("NotifyFor = %v, want 0 (explicit zero kept)", cfg.NotifyFor())
	}
	if cfg.RefreshInterval() != 30*time.Second || cfg.RequestTimeout() != 12*time.Second {
		t.Fatalf("durations = %v / %v", cfg.RefreshInterval(), cfg.RequestTimeout())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
log_file = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.NotificationSeconds != defaultNotifySeconds {
		t.Fatalf("NotificationSeconds = %d, want default", cfg.NotificationSeconds)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_NegativeDurationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("refresh_seconds = -1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "refresh_seconds") {
		t.Fatalf("Load error = %v, want refresh_seconds validation error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
