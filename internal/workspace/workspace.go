// Package workspace manages the on-disk working area: settings, one
// project directory per screenplay and the reports written for it.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const BaseDirName = "Screenpass"

type Settings struct {
	UnitWords int    `json:"unit_words"`
	Seed      uint64 `json:"seed"`
}

func EnsureDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "projects"),
		filepath.Join(base, "reports"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	settingsPath := filepath.Join(base, "configs", "settings.json")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaults := Settings{
			UnitWords: 2500,
			Seed:      1,
		}
		raw, marshalErr := json.MarshalIndent(defaults, "", "  ")
		if marshalErr != nil {
			return "", fmt.Errorf("marshal settings: %w", marshalErr)
		}
		if writeErr := os.WriteFile(settingsPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write settings: %w", writeErr)
		}
	}

	return base, nil
}

// LoadSettings reads configs/settings.json from a workspace.
func LoadSettings(base string) (Settings, error) {
	var s Settings
	raw, err := os.ReadFile(filepath.Join(base, "configs", "settings.json"))
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
