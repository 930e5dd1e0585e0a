// Package paths centralizes filesystem locations used by FieldTuner: the
// per-application data directory, the backup store, tool-owned data files,
// and the ordered list of candidate game profile locations.
//
// A Config is constructed once by the application and passed to the
// components that need it. Nothing in this package touches global state.
package paths

import (
	"os"
	"path/filepath"
)

// Default names used when constructing a Config.
const (
	DefaultAppName     = "FieldTuner"
	DefaultGameFolder  = "Battlefield 6"
	DefaultProfileName = "PROFSAVE_profile"

	// EnvProfileOverride, when set, is prepended to the candidate list so a
	// user can point the tool at an arbitrary profile file.
	EnvProfileOverride = "FIELDTUNER_PROFILE"
)

// Config holds the resolved filesystem layout for one application instance.
type Config struct {
	// AppName names the per-application data directory.
	AppName string

	// GameFolder is the game's folder name under Documents.
	GameFolder string

	// ProfileName is the settings file name the locator searches for.
	ProfileName string

	// appDataDir caches the resolved application data directory.
	appDataDir string
}

// Option configures a Config.
type Option func(*Config)

// WithAppName overrides the application name.
func WithAppName(name string) Option {
	return func(c *Config) {
		c.AppName = name
	}
}

// WithAppDataDir overrides the application data directory. Used by tests to
// keep all writes inside a temporary directory.
func WithAppDataDir(dir string) Option {
	return func(c *Config) {
		c.appDataDir = dir
	}
}

// New creates a path configuration with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		AppName:     DefaultAppName,
		GameFolder:  DefaultGameFolder,
		ProfileName: DefaultProfileName,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.appDataDir == "" {
		c.appDataDir = defaultAppDataDir(c.AppName)
	}

	return c
}

// defaultAppDataDir resolves the per-user application data directory,
// falling back to a dot-directory under $HOME and finally the working
// directory when neither can be determined.
func defaultAppDataDir(appName string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appName)
	}
	return appName
}

// AppDataDir returns the application data directory.
func (c *Config) AppDataDir() string {
	return c.appDataDir
}

// BackupsDir returns the backup store directory.
func (c *Config) BackupsDir() string {
	return filepath.Join(c.appDataDir, "backups")
}

// PresetsDir returns the directory scanned for user preset catalogs.
func (c *Config) PresetsDir() string {
	return filepath.Join(c.appDataDir, "presets")
}

// PreferencesFile returns the user preferences file path.
func (c *Config) PreferencesFile() string {
	return filepath.Join(c.appDataDir, "preferences.toml")
}

// FavoritesFile returns the favorites file path.
func (c *Config) FavoritesFile() string {
	return filepath.Join(c.appDataDir, "favorites.json")
}

// ProfileCandidates returns the ordered list of locations where the game
// profile may live. Earlier entries win. The list covers the plain Documents
// layout, the OneDrive-redirected layout, and the per-storefront variants
// observed in the wild. The environment override, when set, is first.
func (c *Config) ProfileCandidates() []string {
	var candidates []string

	if env := os.Getenv(EnvProfileOverride); env != "" {
		candidates = append(candidates, env)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return candidates
	}

	roots := []string{
		filepath.Join(home, "Documents"),
		filepath.Join(home, "OneDrive", "Documents"),
	}
	variants := []string{
		"steam",
		"",
		"EA App",
		"EA Desktop",
		"Origin",
	}

	for _, root := range roots {
		settings := filepath.Join(root, c.GameFolder, "settings")
		for _, variant := range variants {
			if variant == "" {
				candidates = append(candidates, filepath.Join(settings, c.ProfileName))
				continue
			}
			candidates = append(candidates, filepath.Join(settings, variant, c.ProfileName))
		}
	}

	return candidates
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.appDataDir,
		c.BackupsDir(),
		c.PresetsDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
