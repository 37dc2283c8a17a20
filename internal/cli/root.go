package cli

import (
	"context"
	"fmt"
	"strings"

	"resumescore/internal/config"
	"resumescore/internal/errors"

	"github.com/spf13/cobra"
)

// Private context key types so subcommands cannot collide with other packages.
type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumescore",
	Short: "ATS compatibility analysis and scoring for resumes",
	Long: `Resumescore analyzes a plain-text resume the way an applicant tracking
system would: it extracts sections, skills and keywords, validates claimed
skills against the experience actually described, checks grammar, flags
location privacy risks, and optionally compares the resume against a job
description. The result is a 0-100 score with component breakdowns and
concrete feedback.`,
}

// Execute attaches the config and logger to the command context and runs
// the root command. Every subcommand reads both back through the getters.
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("configuration not found in command context")
}

func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in command context")
}

// EarlyFlags scans raw arguments for the global --config and --log-level
// flags. Configuration must be loaded before cobra runs, so main extracts
// these two values ahead of normal flag parsing.
func EarlyFlags(args []string) (configPath, logLevel string) {
	take := func(i int, name string) (string, bool) {
		arg := args[i]
		if after, ok := strings.CutPrefix(arg, "--"+name+"="); ok {
			return after, true
		}
		if arg == "--"+name && i+1 < len(args) {
			return args[i+1], true
		}
		return "", false
	}

	for i := range args {
		if v, ok := take(i, "config"); ok {
			configPath = v
		}
		if v, ok := take(i, "log-level"); ok {
			logLevel = v
		}
	}
	return configPath, logLevel
}

func init() {
	// Declared here so cobra accepts and documents them; the values are
	// consumed by EarlyFlags before Execute runs.
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ./config.yaml, $HOME/.resumescore, /etc/resumescore)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
