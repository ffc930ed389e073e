package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/config"
	"github.com/danielpatrickdp/wcst/go-controller/internal/logging"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wcst",
	Short: "Card-sorting task administration and scoring",
	Long: `wcst administers a 128-card sorting task to a single participant and scores
each response against a hidden matching rule that changes after every ten
consecutive correct sorts.

Results include accuracy, perseverative errors and responses, and the number
of categories completed. Finished sessions are archived in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database = dbPath
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.NewLogger(level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("WCST_CONFIG", "wcst.yaml"), "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "session database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(runCmd, practiceCmd, replayCmd, inspectCmd, exportFixtureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
