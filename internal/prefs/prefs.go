// Package prefs persists the tool's own preferences and the user's
// favorite settings. These files live in the application data directory,
// next to logs and backups, and are independent of the game profile.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Preferences are the tool's own options, stored as TOML. Loading merges
// the file over the defaults, so a file from an older version that lacks
// newer keys still produces a complete struct.
type Preferences struct {
	Log     LogPrefs     `toml:"log"`
	Backup  BackupPrefs  `toml:"backup"`
	Display DisplayPrefs `toml:"display"`
}

// LogPrefs controls logging.
type LogPrefs struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// BackupPrefs controls backup behavior around saves.
type BackupPrefs struct {
	// AutoBackup creates a backup before every save.
	AutoBackup bool `toml:"auto_backup"`

	// MaxBackups caps how many backups are kept; oldest are pruned.
	// Zero means unlimited.
	MaxBackups int `toml:"max_backups"`
}

// DisplayPrefs controls how settings are presented.
type DisplayPrefs struct {
	// ShowDescriptions includes setting descriptions in listings.
	ShowDescriptions bool `toml:"show_descriptions"`

	// GroupByCategory groups listings by category instead of a flat list.
	GroupByCategory bool `toml:"group_by_category"`

	// ShowTechnicalNames shows raw profile keys instead of display names.
	ShowTechnicalNames bool `toml:"show_technical_names"`
}

// Defaults returns the preferences used when no file exists.
func Defaults() Preferences {
	return Preferences{
		Log: LogPrefs{Level: "info"},
		Backup: BackupPrefs{
			AutoBackup: true,
			MaxBackups: 50,
		},
		Display: DisplayPrefs{
			ShowDescriptions: true,
			GroupByCategory:  true,
		},
	}
}

// Load reads preferences from path, merged over the defaults. A missing
// file returns the defaults without error; a malformed file is an error.
func Load(path string) (Preferences, error) {
	p := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read preferences: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse preferences: %w", err)
	}
	return p, nil
}

// Save writes the preferences to path, creating parent directories as
// needed.
func (p Preferences) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
