package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			recs, err := ctx.Backups.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "no backups")
				return nil
			}
			for _, rec := range recs {
				label := rec.Label
				if label == "" {
					label = "-"
				}
				fmt.Fprintf(out, "%s  %s  %-16s  %6d bytes\n",
					rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), label, rec.SizeBytes)
			}
			return nil
		},
	}
}

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [label]",
		Short: "Create a backup of the profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			label := ""
			if len(args) == 1 {
				label = args[0]
			}
			rec, err := ctx.Backups.Create(label)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%d bytes)\n", rec.Name(), rec.SizeBytes)
			return nil
		},
	}
}

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup>",
		Short: "Restore the profile from a backup",
		Long: `Restore replaces the profile with a backup, identified by its ID or
file name. The current profile is snapshotted first, so a restore can
itself be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			rec, err := ctx.Backups.Find(args[0])
			if err != nil {
				return err
			}
			if err := ctx.Backups.Restore(rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", rec.Name())
			return nil
		},
	}
}

func newDeleteBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-backup <backup>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}
			rec, err := ctx.Backups.Find(args[0])
			if err != nil {
				return err
			}
			if err := ctx.Backups.Delete(rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", rec.Name())
			return nil
		},
	}
}
