package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/export"
	"github.com/spendtrack-dev/spendtrack/internal/logger"
	"github.com/spendtrack-dev/spendtrack/internal/pipeline"
	"github.com/spendtrack-dev/spendtrack/internal/render"
	"github.com/spendtrack-dev/spendtrack/internal/report"
)

func newReportCommand(g *globalOptions) *cobra.Command {
	var (
		rf        runFlags
		account   string
		xlsxPath  string
		runLogDir string
	)

	cmd := &cobra.Command{
		Use:   "report <file>...",
		Short: "Summarize bank exports by month and category",
		Long: `Load each CSV export, drop rows that fail cleaning, classify the rest with
the account's rule set and print a per-month category breakdown.

The account is picked from the file name (e.g. "checking-2024.csv") unless
--account is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if xlsxPath != "" && len(args) > 1 {
				return fmt.Errorf("--xlsx takes a single input file, got %d", len(args))
			}

			cfg, svc, err := g.load()
			if err != nil {
				return err
			}
			settings, err := rf.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logger.FromContext(ctx)

			var full, shown []*report.Report
			for _, path := range args {
				profile, err := profileFor(svc, account, path)
				if err != nil {
					return err
				}
				log.Debug().Str("file", path).Str("account", profile.Name).Msg("routed")

				res, err := pipeline.RunFile(ctx, path, profile.Rules, settings.pipeline)
				if err != nil {
					return err
				}
				full = append(full, res.Report)
				shown = append(shown, settings.view(res.Report))
			}

			if err := render.Write(cmd.OutOrStdout(), settings.format, settings.render, shown...); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}

			if xlsxPath != "" {
				if err := export.SaveXLSX(xlsxPath, shown[0]); err != nil {
					return err
				}
				log.Info().Str("path", xlsxPath).Msg("workbook written")
			}

			if runLogDir != "" {
				return appendRunLog(runLogDir, full)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&account, "account", "a", "", "account profile to use instead of routing by file name")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report to this .xlsx workbook")
	cmd.Flags().StringVar(&runLogDir, "run-log", "", "workspace directory whose logs/run-log.csv records this run")

	return cmd
}
