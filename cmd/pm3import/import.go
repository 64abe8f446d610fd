package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/pm3import/internal/core"
)

type importOptions struct {
	clubsPath   string
	playersPath string
	target      targetFlags
	year        int
	importLoans bool
	maxPlayers  int
	noBackup    bool
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Write the clubs and players tables into a saved game or the base data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("import-loans") {
				opts.importLoans = a.cfg.Import.ImportLoans
			}
			return runImport(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.clubsPath, "clubs", "", "Clubs table (CSV, required)")
	cmd.Flags().StringVar(&opts.playersPath, "players", "", "Players table (CSV, required)")
	opts.target.register(cmd)
	cmd.Flags().IntVar(&opts.year, "year", 0, "Season year to store (default: keep the saved year)")
	cmd.Flags().BoolVar(&opts.importLoans, "import-loans", false, "Import loaned players with their loan flag")
	cmd.Flags().IntVar(&opts.maxPlayers, "max-players", 0, "Squad limit for clubs without max_players (1-24, default $IMPORT_DEFAULT_MAX_PLAYERS)")
	cmd.Flags().BoolVar(&opts.noBackup, "no-backup", false, "Skip the backup of the save files")

	_ = cmd.MarkFlagRequired("clubs")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, opts importOptions) error {
	target, err := opts.target.target()
	if err != nil {
		return err
	}

	clubs, err := os.Open(opts.clubsPath)
	if err != nil {
		return fmt.Errorf("open clubs table: %w", err)
	}
	defer clubs.Close()
	players, err := os.Open(opts.playersPath)
	if err != nil {
		return fmt.Errorf("open players table: %w", err)
	}
	defer players.Close()

	result, err := a.svc.Run(cmd.Context(), core.RunRequest{
		Clubs:       clubs,
		Players:     players,
		Target:      target,
		Year:        opts.year,
		ImportLoans: opts.importLoans,
		MaxPlayers:  opts.maxPlayers,
		Backup:      a.cfg.Import.Backup && !opts.noBackup,
		Source:      "cli",
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Import complete!")
	fmt.Fprintf(out, "  Clubs imported: %d\n", result.Stats.ClubsImported)
	fmt.Fprintf(out, "  Players imported: %d\n", result.Stats.PlayersImported)
	fmt.Fprintf(out, "  Players skipped: %d\n", result.Stats.PlayersSkipped)
	fmt.Fprintf(out, "  Base year: %d\n", result.BaseYear)
	if result.BackupDir != "" {
		fmt.Fprintf(out, "  Backup: %s\n", result.BackupDir)
	}
	fmt.Fprintln(out, "Data saved successfully!")
	return nil
}
