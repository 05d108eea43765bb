package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/logging"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "interactive"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the mealfinder CLI.
// It loads configuration, wires up logging and tracing, and registers the
// browse, list, categories and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "mealfinder",
		Short:         "Browse recipes from a TheMealDB-compatible catalog",
		Long:          "mealfinder: filter, sort, search and page through meals fetched from a remote recipe catalog",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to a config file (default ~/.mealfinder/config.yaml)")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "shard cache TTL in seconds (0 = use config default, overrides config file and env var)")
	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), NewCategoriesCmd(), NewVersionCmd(ver))

	return cmd
}

// loadConfig resolves the configuration for this invocation: defaults, the
// config file, environment, then flags. The result becomes the global config.
func loadConfig(cmd *cobra.Command) error {
	// Validate cache-ttl is non-negative (negative values cause undefined cache expiry behavior)
	cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
	if cacheTTL < 0 {
		return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cacheTTL > 0 {
		cfg.Cache.TTLSeconds = cacheTTL
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Browse meals interactively
  mealfinder browse

  # Print the second page of desserts sorted by name
  mealfinder list --category Dessert --sort name --page 2

  # Search by name and print JSON
  mealfinder list --search curry --output json

  # List the categories of the loaded catalog
  mealfinder categories

  # Keep fetched shards for 5 minutes
  mealfinder browse --cache-ttl 300`
