package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Persistent flags shared by every subcommand.
var (
	flagProfile string
	flagVerbose bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldtuner",
		Short: "Edit Battlefield 6 profile settings safely",
		Long: `fieldtuner reads and edits the game's PROFSAVE_profile settings file.

Every change is validated, every save is preceded by a backup, and lines
the tool does not touch are written back byte-for-byte. Saves are refused
while the game is running.`,
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "path to the profile file (overrides detection)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newShowCommand(),
		newGetCommand(),
		newSetCommand(),
		newApplyCommand(),
		newPresetsCommand(),
		newRestoreDefaultsCommand(),
		newBackupsCommand(),
		newBackupCommand(),
		newRestoreCommand(),
		newDeleteBackupCommand(),
		newFavoritesCommand(),
		newWatchCommand(),
		newPathCommand(),
		newRunCommand(),
	)
	return root
}
