package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or edit favorite settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, false)
			if err != nil {
				return err
			}
			keys := ctx.Favorites.All()
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no favorites")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, key := range keys {
				if val, ok := ctx.Store.Lookup(key); ok {
					fmt.Fprintf(out, "%-40s %s\n", key, ctx.formatValue(key, val))
				} else {
					fmt.Fprintf(out, "%-40s (not in profile)\n", key)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <key>",
			Short: "Star a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := newAppContext(flagProfile, flagVerbose, false)
				if err != nil {
					return err
				}
				if err := ctx.Favorites.Add(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <key>",
			Short: "Unstar a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := newAppContext(flagProfile, flagVerbose, false)
				if err != nil {
					return err
				}
				if err := ctx.Favorites.Remove(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <key>",
			Short: "Star or unstar a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := newAppContext(flagProfile, flagVerbose, false)
				if err != nil {
					return err
				}
				on, err := ctx.Favorites.Toggle(args[0])
				if err != nil {
					return err
				}
				state := "removed"
				if on {
					state = "added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, args[0])
				return nil
			},
		},
	)
	return cmd
}
