// Package cli provides the snowforge command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/anglinb/snowforge/internal/config"
	"github.com/anglinb/snowforge/internal/logging"
	"github.com/anglinb/snowforge/internal/snowflakeclient"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// SessionOpener opens the connection used by apply.
type SessionOpener func(cfg snowflakeclient.Config, logger zerolog.Logger) (snowflakeclient.SnowflakeClient, error)

func openSession(cfg snowflakeclient.Config, logger zerolog.Logger) (snowflakeclient.SnowflakeClient, error) {
	session, err := snowflakeclient.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// app carries state resolved by the root command to its subcommands.
type app struct {
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	openSession SessionOpener
}

// NewRootCmd creates the root command backed by the Snowflake driver.
func NewRootCmd() *cobra.Command {
	return newRootCmd(openSession)
}

func newRootCmd(opener SessionOpener) *cobra.Command {
	a := &app{openSession: opener, logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "snowforge",
		Short: "Build and apply Snowflake pipelines",
		Long: `snowforge renders Snowflake DDL and load statements from a YAML manifest
and applies them in a single transaction.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+")")
	flags.String("account", "", "Snowflake account identifier")
	flags.String("user", "", "Snowflake user")
	flags.String("warehouse", "", "Warehouse to run statements on")
	flags.String("database", "", "Default database")
	flags.String("schema", "", "Default schema")
	flags.String("role", "", "Role to assume")
	flags.Int("max-retries", snowflakeclient.DefaultMaxRetries, "Transaction retries on transient connection errors (0 disables)")
	flags.Bool("abort-session-on-close", false, "Abort the Snowflake session when the connection is released")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.LogFormatText, config.LogFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newApplyCommand(a))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		return err
	}
	return nil
}
