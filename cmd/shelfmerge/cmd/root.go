package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelfmerge/internal/application"
	"shelfmerge/internal/config"
	"shelfmerge/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	v       *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "shelfmerge",
	Short: "Reconcile Goodreads and StoryGraph library exports",
	Long: `shelfmerge reads a Goodreads and a StoryGraph library export, pairs up the
records that describe the same book and reports where the two catalogs
disagree (rating, format, date read, tags, status, read count, ownership).

Records are paired by ISBN first. Records that cannot be paired that way are
offered to you for confirmation when their titles overlap.

Run without a subcommand to choose an action interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if v, err = config.NewViper(cfgFile); err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		if cfg, err = config.Load(v); err != nil {
			return err
		}

		logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		logging.SetDefault(logger)
		cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	if err != nil {
		if errors.Is(err, application.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Aborted, nothing was saved.")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var flagKeys = map[string]string{
	"goodreads":   config.KeyGoodreads,
	"storygraph":  config.KeyStoryGraph,
	"backend":     config.KeyStoreBackend,
	"store":       config.KeyStorePath,
	"log-level":   config.KeyLogLevel,
	"log-format":  config.KeyLogFormat,
	"ignore-tag":  config.KeyIgnoredTags,
	"interactive": config.KeyInteractive,
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/shelfmerge/config.yaml)")
	pf.String("goodreads", config.DefaultGoodreadsPath, "Goodreads library export (CSV)")
	pf.String("storygraph", config.DefaultStoryGraphPath, "StoryGraph library export (CSV)")
	pf.String("backend", config.BackendJSON, "collection store: json, yaml or sqlite")
	pf.String("store", "", "collection store path (default library_collection.<backend>)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json (default: console on terminals)")
	pf.StringSlice("ignore-tag", []string{"to-read"}, "tags left out of the tag comparison")
	pf.String("interactive", config.InteractiveAuto, "confirmation UI: auto, tui or prompt")
}
