package main

import (
	"fmt"
	"strings"

	"github.com/fieldtuner/fieldtuner/internal/app"
	"github.com/fieldtuner/fieldtuner/internal/backup"
	"github.com/fieldtuner/fieldtuner/internal/config/locate"
	"github.com/fieldtuner/fieldtuner/internal/config/notify"
	"github.com/fieldtuner/fieldtuner/internal/config/registry"
	"github.com/fieldtuner/fieldtuner/internal/config/store"
	"github.com/fieldtuner/fieldtuner/internal/game"
	"github.com/fieldtuner/fieldtuner/internal/paths"
	"github.com/fieldtuner/fieldtuner/internal/preset"
	"github.com/fieldtuner/fieldtuner/internal/prefs"
)

// appContext holds the wired-up subsystems every command works with.
type appContext struct {
	Log       *app.Logger
	Paths     *paths.Config
	Prefs     prefs.Preferences
	Favorites *prefs.Favorites
	Registry  *registry.Registry
	Notifier  *notify.Notifier
	Backups   *backup.Manager
	Store     *store.Store
	Presets   *preset.Catalog
}

// newAppContext builds the application around the located (or overridden)
// profile. Commands that do not need a profile pass requireProfile=false
// and get a context whose store is empty.
func newAppContext(profileOverride string, verbose bool, requireProfile bool) (*appContext, error) {
	p := paths.New()

	preferences, err := prefs.Load(p.PreferencesFile())
	if err != nil {
		return nil, err
	}

	level := app.ParseLogLevel(preferences.Log.Level)
	if verbose {
		level = app.LogLevelDebug
	}
	log := app.NewLogger(app.LoggerConfig{
		Level:  level,
		Prefix: "fieldtuner",
	})

	if err := p.EnsureDirectories(); err != nil {
		log.Warn("creating app directories: %v", err)
	}

	ctx := &appContext{
		Log:       log,
		Paths:     p,
		Prefs:     preferences,
		Favorites: prefs.LoadFavorites(p.FavoritesFile(), log),
		Registry:  registry.Builtin(),
		Notifier:  notify.New(),
	}

	profile := profileOverride
	if profile == "" {
		found, ok := locate.Detect(p.ProfileCandidates())
		if !ok {
			if requireProfile {
				return nil, fmt.Errorf("no profile found; pass --profile or set %s", paths.EnvProfileOverride)
			}
			ctx.Store = store.New(store.WithLogger(log), store.WithRegistry(ctx.Registry), store.WithNotifier(ctx.Notifier))
			ctx.Presets = preset.NewCatalog(preset.WithLogger(log))
			if err := ctx.Presets.LoadDir(p.PresetsDir()); err != nil {
				log.Warn("loading user presets: %v", err)
			}
			return ctx, nil
		}
		profile = found
	}

	ctx.Backups = backup.New(p.BackupsDir(), profile, log)

	storeOpts := []store.Option{
		store.WithLogger(log),
		store.WithRegistry(ctx.Registry),
		store.WithNotifier(ctx.Notifier),
		store.WithPreSaveCheck(game.GuardRunning(game.DefaultProcessNames())),
		store.WithPreSaveCheck(game.GuardLock(profile)),
	}
	if preferences.Backup.AutoBackup {
		storeOpts = append(storeOpts, store.WithBackups(ctx.Backups))
	}
	ctx.Store = store.New(storeOpts...)
	if err := ctx.Store.Load(profile); err != nil {
		return nil, err
	}

	ctx.Presets = preset.NewCatalog(preset.WithLogger(log))
	if err := ctx.Presets.LoadDir(p.PresetsDir()); err != nil {
		log.Warn("loading user presets: %v", err)
	}

	return ctx, nil
}

// save writes the store back and prunes old backups per the preferences.
func (c *appContext) save() error {
	if err := c.Store.Save(); err != nil {
		return err
	}
	if c.Backups != nil {
		if _, err := c.Backups.Prune(c.Prefs.Backup.MaxBackups); err != nil {
			c.Log.Warn("pruning backups: %v", err)
		}
	}
	return nil
}

// formatValue renders a value with its registered meaning when one is
// known, e.g. "1 (on)" for booleans.
func (c *appContext) formatValue(key, value string) string {
	s := c.Registry.Lookup(key)
	if s == nil {
		return value
	}
	switch s.Type {
	case registry.TypeBool:
		switch strings.TrimSpace(value) {
		case "1", "true", "True":
			return value + " (on)"
		case "0", "false", "False":
			return value + " (off)"
		}
	}
	return value
}
