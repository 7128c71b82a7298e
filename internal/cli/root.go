// Package cli implements the talentroll commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/talentroll/internal/config"
	"github.com/okian/talentroll/pkg/logger"
)

// options holds the persistent flags and the configuration they produce.
type options struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg *config.Config
}

// NewRootCmd builds the top-level command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "talentroll",
		Short: "Estimate how many skill points a DSA5 talent check needs",
		Long: "talentroll reads an Optolith character export, resolves the three attributes of " +
			"every talent and simulates three-dice checks to estimate how many extra skill " +
			"points a check would need.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: $"+config.EnvConfigFile+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON lines")

	root.AddCommand(newSimulateCmd(opts), newTalentsCmd(opts))
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(o.logJSON)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	// Validation waits until the subcommand has applied its flags.
	cfg, err := config.Read(cmd.Context(), o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log level, using info", logger.String("log_level", cfg.LogLevel))
	}

	o.cfg = cfg
	return nil
}

func wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
