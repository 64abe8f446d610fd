package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/pm3import/internal/history"
)

func newRunsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent imports from the run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tTARGET\tSOURCE\tCLUBS\tPLAYERS\tSKIPPED\tOUTCOME")
			for _, r := range runs {
				outcome := r.Outcome()
				if r.Error != "" {
					outcome += ": " + r.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Local().Format(time.DateTime),
					r.Target, r.Source,
					r.ClubsImported, r.PlayersImported, r.PlayersSkipped,
					outcome,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", history.DefaultListLimit, "Number of runs to show")
	return cmd
}
