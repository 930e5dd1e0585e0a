package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtuner/fieldtuner/internal/script"
)

func newRunCommand() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a tweak script against the profile",
		Long: `Run executes a Lua tweak script in a sandbox. The script reads and
stages settings through the tuner table:

  tuner.get(key)      -> value or nil
  tuner.has(key)      -> true/false
  tuner.set(key, v)   stage one value
  tuner.apply(table)  stage a validated batch
  tuner.keys()        -> array of profile keys

Staged changes are saved afterwards unless --no-save is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}

			runner := script.NewRunner(ctx.Store, script.WithLogger(ctx.Log))
			if err := runner.RunFile(args[0]); err != nil {
				return err
			}

			if !ctx.Store.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "script made no changes")
				return nil
			}
			changed := ctx.Store.ChangedKeys()
			if noSave {
				fmt.Fprintf(cmd.OutOrStdout(), "staged but not saved: %s\n", joinKeys(changed))
				return nil
			}
			if err := ctx.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d changes: %s\n", len(changed), joinKeys(changed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "stage changes without writing the profile")
	return cmd
}
