package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/accounts"
	"github.com/spendtrack-dev/spendtrack/internal/buildinfo"
	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/logger"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "spendtrack",
		Short:   "Categorized monthly summaries of bank exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file; built-in rules are used when it does not exist")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newReportCommand(opts),
		newScanCommand(opts),
		newClassifyCommand(opts),
		newRulesCommand(opts),
	)

	return rootCmd
}

// load reads the config and compiles its account rule sets.
func (o *globalOptions) load() (*config.Config, *accounts.Service, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	svc, err := accounts.Load(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("loading accounts from %s: %w", o.configPath, err)
	}
	return cfg, svc, nil
}
