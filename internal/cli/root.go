// Package cli defines the command-line interface of the box2d shapes editor.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"box2d-shapes/internal/config"
	"box2d-shapes/internal/env"
	"box2d-shapes/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	Workspace  string
	ConfigPath string
	LogLevel   logging.Level

	cfg *config.Config
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "box2dshapes",
		Short:         "box2dshapes places box2d marker shapes in an editor project",
		Long:          "box2dshapes edits the box2d marker shapes of an editor workspace: it adds cubes and spheres, saves their descriptors next to the project and generates the runtime box2d.json.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.Load(".env"); err != nil {
				return err
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			levelValue := cfg.Log.Level
			if f := cmd.Flag("log-level"); f != nil && f.Changed {
				levelValue = f.Value.String()
			}
			level := logging.ParseLevel(levelValue)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Workspace, "workspace", "w", "", "Workspace directory (defaults to the configured workspace)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAddCommand(opts),
		newSaveCommand(opts),
		newGenerateCommand(opts),
		newListCommand(opts),
		newMenuCommand(opts),
		newExecCommand(opts),
		newViewCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
