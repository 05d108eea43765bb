package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
// Interactive commands on a terminal log to the configured file or nowhere, so
// log lines never land on the TUI screen.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if isInteractive(cmd) && logCfg.Output == logging.OutputStderr {
		logCfg.Output = logging.OutputDiscard
	}

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !isInteractive(cmd) {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return result
}

// isInteractive reports whether cmd will run the TUI on this terminal.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationInteractive] == "true" && isTerminal(os.Stdout)
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
