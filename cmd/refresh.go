/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/fulmenhq/folio/pkg/refresh"
	"github.com/spf13/cobra"
)

func newRefreshCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update meta.json image fields from published files",
		Long: `Refresh scans public/projects/<category>/<slug>/ for images and writes
hero, portfolioImages and galleryImages back into the project's meta.json.
Existing keys keep their position; fields with no matching files are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRefresh(cmd, a)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Report changes without writing meta.json files")
	return cmd
}

func runRefresh(cmd *cobra.Command, a *app) error {
	if err := a.load(cmd); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	logger.SetDryRun(dryRun)
	defer logger.SetDryRun(false)

	out := cmd.OutOrStdout()
	res, err := refresh.Run(a.layout, refresh.Options{DryRun: dryRun, Out: out})
	if err != nil {
		return fsError(err)
	}
	res.Write(out, dryRun)
	if len(res.Failed) > 0 {
		logger.Warn("Some projects could not be refreshed", logger.Int("failed", len(res.Failed)))
	}
	return nil
}
