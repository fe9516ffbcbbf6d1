package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/accounts"
	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/gitops"
	"github.com/spendtrack-dev/spendtrack/internal/importer"
	"github.com/spendtrack-dev/spendtrack/internal/logger"
	"github.com/spendtrack-dev/spendtrack/internal/pipeline"
	"github.com/spendtrack-dev/spendtrack/internal/render"
	"github.com/spendtrack-dev/spendtrack/internal/report"
)

func newScanCommand(g *globalOptions) *cobra.Command {
	var (
		rf      runFlags
		archive bool
		commit  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Report on every export waiting in a workspace's import directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			// A workspace config takes precedence over the working directory's.
			opts := g
			if !cmd.Flags().Changed("config") {
				opts = &globalOptions{configPath: filepath.Join(root, config.FileName), logLevel: g.logLevel}
			}
			cfg, svc, err := opts.load()
			if err != nil {
				return err
			}
			settings, err := rf.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			files, err := importer.Scan(root)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logger.FromContext(ctx)

			var full, shown []*report.Report
			var done []importer.FileInfo
			for _, f := range files {
				profile, err := svc.Route(f.Name)
				if errors.Is(err, accounts.ErrNoRoute) {
					log.Warn().Str("file", f.Name).Msg("skipping file with no matching account")
					continue
				}
				if err != nil {
					return err
				}

				res, err := pipeline.RunFile(ctx, f.Path, profile.Rules, settings.pipeline)
				if err != nil {
					return err
				}
				full = append(full, res.Report)
				shown = append(shown, settings.view(res.Report))
				done = append(done, f)
			}

			if len(done) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exports to process in %s.\n", filepath.Join(root, importer.ImportDir))
				return nil
			}

			if err := render.Write(cmd.OutOrStdout(), settings.format, settings.render, shown...); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}

			if err := appendRunLog(root, full); err != nil {
				return err
			}

			if archive {
				for _, f := range done {
					if err := importer.MarkProcessed(root, f.Name); err != nil {
						return err
					}
				}
			}

			if commit && gitops.IsRepo(root) {
				hash, err := gitops.CommitAll(root, fmt.Sprintf("scan: %d export(s)", len(done)))
				if err != nil {
					return err
				}
				if hash != "" {
					log.Info().Str("commit", hash).Msg("workspace committed")
				}
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().BoolVar(&archive, "archive", false, "move processed exports to import/processed")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the workspace afterwards when it is a git repository")

	return cmd
}
