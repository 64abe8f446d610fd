package main

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/pm3import/internal/kitexport"
)

func newKitsCmd(a *app) *cobra.Command {
	var (
		target targetFlags
		csv    bool
	)

	cmd := &cobra.Command{
		Use:   "kits",
		Short: "Print the kit colours of every named club",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := target.target()
			if err != nil {
				return err
			}
			clubs, err := a.svc.Kits("", t)
			if err != nil {
				return err
			}
			format := kitexport.FormatText
			if csv {
				format = kitexport.FormatCSV
			}
			return kitexport.Write(cmd.OutOrStdout(), clubs, format)
		},
	}

	target.register(cmd)
	cmd.Flags().BoolVar(&csv, "csv", false, "Write CSV instead of the text report")
	return cmd
}
