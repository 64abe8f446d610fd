package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/pm3import/internal/config"
	"github.com/JonMunkholm/pm3import/internal/core"
	"github.com/JonMunkholm/pm3import/internal/history/backend"
	"github.com/JonMunkholm/pm3import/internal/logging"
	"github.com/JonMunkholm/pm3import/internal/savefile"
)

// app carries what every subcommand needs once the root has loaded the
// configuration.
type app struct {
	verbose bool
	pm3Path string

	cfg *config.Config
	svc *core.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pm3import",
		Short:         "Import club and player tables into a PM3 installation",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.svc == nil {
				return nil
			}
			return a.svc.Close()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log per-club details")
	root.PersistentFlags().StringVar(&a.pm3Path, "pm3", "", "PM3 installation directory (default $PM3_PATH)")

	root.AddCommand(
		newImportCmd(a),
		newKitsCmd(a),
		newRestoreCmd(a),
		newBackupsCmd(a),
		newRunsCmd(a),
	)
	return root
}

// setup loads .env, configuration, logging and the run history store.
func (a *app) setup(cmd *cobra.Command) error {
	// Unlike the server, existing variables win over .env here.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if a.pm3Path != "" {
		cfg.Import.PM3Path = a.pm3Path
	}

	store, err := backend.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.svc = core.NewService(cfg.Import, store, nil)
	return nil
}

// targetFlags registers the mutually exclusive --game and --base flags.
type targetFlags struct {
	game int
	base bool
}

func (t *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&t.game, "game", 0, "Saved game slot (1-8)")
	cmd.Flags().BoolVar(&t.base, "base", false, "Use the default data set instead of a saved game")
	cmd.MarkFlagsMutuallyExclusive("game", "base")
	cmd.MarkFlagsOneRequired("game", "base")
}

func (t *targetFlags) target() (savefile.Target, error) {
	return savefile.ParseTarget(t.game, t.base)
}
