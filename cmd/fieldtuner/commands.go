package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldtuner/fieldtuner/internal/config/locate"
	"github.com/fieldtuner/fieldtuner/internal/paths"
)

func newShowCommand() *cobra.Command {
	var category string
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the profile's settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s (%d settings, %s strategy)\n\n",
				ctx.Store.SourcePath(), ctx.Store.Len(), ctx.Store.Strategy())

			if all || !ctx.Prefs.Display.GroupByCategory {
				for _, key := range ctx.Store.Keys() {
					val, _ := ctx.Store.Lookup(key)
					fmt.Fprintf(out, "%s %s\n", key, val)
				}
				return nil
			}

			categories := ctx.Registry.Categories()
			if category != "" {
				categories = []string{category}
			}
			for _, cat := range categories {
				settings := ctx.Registry.Category(cat)
				var lines []string
				for _, s := range settings {
					val, ok := ctx.Store.Lookup(s.Key)
					if !ok {
						continue
					}
					line := fmt.Sprintf("  %-40s %s", s.Key, ctx.formatValue(s.Key, val))
					if ctx.Prefs.Display.ShowDescriptions && s.Description != "" {
						line += "  # " + s.Description
					}
					lines = append(lines, line)
				}
				if len(lines) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", cat)
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category")
	cmd.Flags().BoolVar(&all, "all", false, "flat list of every key, including unknown ones")
	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			val, ok := ctx.Store.Lookup(args[0])
			if !ok {
				return fmt.Errorf("key %q not found in profile", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save the profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			key, value := args[0], args[1]
			if err := ctx.Store.Set(key, value); err != nil {
				return err
			}
			if err := ctx.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, ctx.formatValue(key, value))
			return nil
		},
	}
}

func newApplyCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <preset>",
		Short: "Apply a preset and save the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			id := args[0]
			p, ok := ctx.Presets.Get(id)
			if !ok {
				return fmt.Errorf("unknown preset %q (see 'fieldtuner presets')", id)
			}

			if dryRun {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s would change:\n", p.Name)
				keys := make([]string, 0, len(p.Settings))
				for key := range p.Settings {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					cur, _ := ctx.Store.Lookup(key)
					if cur != p.Settings[key] {
						fmt.Fprintf(out, "  %-40s %s -> %s\n", key, cur, p.Settings[key])
					}
				}
				return nil
			}

			if err := ctx.Presets.Apply(id, ctx.Store); err != nil {
				return err
			}
			if err := ctx.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s (%d settings)\n", p.Name, len(p.Settings))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would change without saving")
	return cmd
}

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range ctx.Presets.All() {
				origin := "builtin"
				if !p.Builtin {
					origin = "user"
				}
				fmt.Fprintf(out, "%-14s %-12s %s\n", p.ID, "("+origin+")", p.Description)
			}
			return nil
		},
	}
}

func newRestoreDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore-defaults",
		Short: "Reset every known setting to its default value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}

			defaults := make(map[string]string)
			for _, s := range ctx.Registry.All() {
				if _, ok := ctx.Store.Lookup(s.Key); ok && s.Default != "" {
					defaults[s.Key] = s.Default
				}
			}
			if len(defaults) == 0 {
				return fmt.Errorf("no known settings found in profile")
			}
			if err := ctx.Store.Apply(defaults, "defaults"); err != nil {
				return err
			}
			if err := ctx.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d settings to defaults\n", len(defaults))
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where the profile was found",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := paths.New()

			if flagProfile != "" {
				fmt.Fprintf(out, "override: %s (valid: %v)\n", flagProfile, locate.Validate(flagProfile))
				return nil
			}

			found, ok := locate.Detect(p.ProfileCandidates())
			if ok {
				fmt.Fprintln(out, found)
				return nil
			}

			fmt.Fprintln(out, "no profile found; searched:")
			for _, cand := range p.ProfileCandidates() {
				fmt.Fprintf(out, "  %s\n", cand)
			}
			return fmt.Errorf("profile not found")
		},
	}
}

// joinKeys is a small display helper for comma lists.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
