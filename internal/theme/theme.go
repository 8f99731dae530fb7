// Package theme persists the light/dark preference. The store is passed
// explicitly through the program's Config; nothing reads it ambiently.
package theme

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the two-value theme vocabulary.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Store reads and writes the preference file. Initialization order: persisted
// preference, else the terminal's background color, then apply.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

type preference struct {
	Theme Mode `json:"theme"`
}

// Load returns the persisted mode, falling back to the terminal background
// when no valid preference exists.
func (s *Store) Load() Mode {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var pref preference
		if err := json.Unmarshal(data, &pref); err == nil {
			if pref.Theme == Light || pref.Theme == Dark {
				return pref.Theme
			}
		}
	}
	return systemMode()
}

// Save persists the mode, creating parent directories as needed.
func (s *Store) Save(mode Mode) error {
	if mode != Light && mode != Dark {
		return errors.New("theme: unknown mode")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.Marshal(preference{Theme: mode})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Toggle flips the mode.
func Toggle(mode Mode) Mode {
	if mode == Dark {
		return Light
	}
	return Dark
}

func systemMode() Mode {
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}
