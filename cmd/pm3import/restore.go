package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRestoreCmd(a *app) *cobra.Command {
	var (
		target targetFlags
		backup string
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Put a backup of the save files back into place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := target.target()
			if err != nil {
				return err
			}
			if err := a.svc.Restore(cmd.Context(), "", t, backup); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", t, backup)
			return nil
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&backup, "backup", "", "Backup directory, relative to the installation or absolute (required)")
	_ = cmd.MarkFlagRequired("backup")
	return cmd
}

func newBackupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List the backups of the installation, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := a.svc.Backups("")
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
				return nil
			}
			for _, b := range backups {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		},
	}
}
