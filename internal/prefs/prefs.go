// Package prefs remembers interface choices between runs, currently the TUI
// theme. Preferences live in ~/.config/bloglist/prefs.toml. They are
// cosmetic, so every read problem degrades to the defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bloglist/internal/config"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	DefaultPath  = "~/.config/bloglist/prefs.toml"
	DefaultTheme = "Nightfox"
)

// Load reads preferences from path, or DefaultPath when blank.
func Load(path string) Prefs {
	p := Prefs{Theme: DefaultTheme}
	resolved, err := resolve(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return p
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		p.Theme = theme
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return config.ExpandPath(path)
}
