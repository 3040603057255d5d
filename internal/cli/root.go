// Package cli contains the restwell operator commands.
// They work directly against the local database, so the server does not need to be running.
package cli

import (
	"fmt"
	"log/slog"
	"restwell/config"
	"restwell/internal/app"
	"restwell/internal/logging"

	"github.com/spf13/cobra"
)

// runtime is the state shared by all commands of one invocation
type runtime struct {
	configPath string
	useEnv     bool
	verbose    bool
	logger     *slog.Logger
	app        *app.App
}

// NewRootCommand builds the restwell-cli command tree
func NewRootCommand(version string) *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   "restwell-cli",
		Short: "Operate a restwell installation",
		Long: `restwell-cli manages the Fitbit connection and runs syncs against the local database.

Example usage:
  restwell-cli auth-url                          # Print a Fitbit authorization URL
  restwell-cli exchange --code CODE --state ST   # Finish connecting with the redirect parameters
  restwell-cli status                            # Show connection and last sync
  restwell-cli sync                              # Fetch today and yesterday now
  restwell-cli disconnect                        # Forget stored Fitbit tokens`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&rt.configPath, "config", "config.json", "path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&rt.useEnv, "env", false, "load configuration from environment variables")
	rootCmd.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newAuthURLCommand(rt),
		newExchangeCommand(rt),
		newStatusCommand(rt),
		newSyncCommand(rt),
		newDisconnectCommand(rt),
	)

	return rootCmd
}

// init loads the configuration and opens the services
func (rt *runtime) init(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if rt.verbose {
		level = slog.LevelDebug
	}
	rt.logger = logging.NewLogger(logging.LoggerConfig{
		Format: "text",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})

	var cfg *config.Config
	var err error
	if rt.useEnv {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(rt.configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rt.app, err = app.New(cmd.Context(), cfg, rt.logger)
	return err
}

// run opens the services around a command body and closes them when it returns
func (rt *runtime) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := rt.init(cmd); err != nil {
			return err
		}
		defer rt.close()
		return fn(cmd, args)
	}
}

func (rt *runtime) close() {
	if rt.app == nil {
		return
	}
	if err := rt.app.Close(); err != nil {
		rt.logger.Warn("Failed to close database", "component", "cli", "error", err)
	}
	rt.app = nil
}
