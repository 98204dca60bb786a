package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/logging"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagQuiet    bool
	flagLogLevel string
)

// Set by loadEnv before any command runs.
var (
	appCfg   config.Config
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "brgy",
	Short: "Barangay residents and records registry",
	Long:  "Register residents and businesses, issue IDs, clearances and permits, and browse them month by month.",
	RunE:  runSummary,

	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLog()
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Registry database path (default $BRGY_DB or ~/.local/share/brgy/registry.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
}

// loadEnv reads the config and builds the logger. A broken config file is
// reported and replaced by defaults so the registry stays usable.
func loadEnv(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %s; using defaults\n", err)
	}
	appCfg = cfg

	opts := logging.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
		Quiet: flagQuiet,
	}
	if flagLogLevel != "" {
		opts.Level = flagLogLevel
	}
	if cmd.Name() == "tui" && opts.File == "" {
		opts.File = defaultTUILogPath()
	}

	l, closeFn, err := logging.New(opts)
	if err != nil {
		return err
	}
	logger = l
	closeLog = closeFn
	return nil
}

// dbPath resolves the registry location: --db, then $BRGY_DB or the config,
// then the default data directory.
func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	if p := config.DBPath(appCfg); p != "" {
		return p
	}
	return pipeline.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	path := dbPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Msg("registry opened")
	return st, nil
}

func newSource(st *store.Store) pipeline.Source {
	return pipeline.Source{Store: st, Logger: logger}
}
