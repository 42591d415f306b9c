/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"

	"github.com/fulmenhq/folio/pkg/assetsync"
	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/fulmenhq/folio/pkg/ignore"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/spf13/cobra"
)

func newSyncCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy project assets into the public tree",
		Long: `Sync copies content/projects/<category>/<slug>/assets/** to
public/projects/<category>/<slug>/, preserving sub-folders, permissions and
modification times. Files are copied when missing or when size or
modification time differ (content hash with --verify-hash).

--clean additionally deletes destination entries with no source file, per
project folder. --dry-run prints every action without changing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, a)
		},
	}
	cmd.Flags().String("src", "", "Source projects root (default: <content_dir>/<projects_dir>)")
	cmd.Flags().String("dst", "", "Destination public root (default: <public_dir>/<projects_dir>)")
	cmd.Flags().Bool("dry-run", false, "Print actions without changing files")
	cmd.Flags().Bool("clean", false, "Mirror sync: delete extra files in dst per project folder")
	cmd.Flags().Bool("verify-hash", false, "Compare file contents by SHA-256 instead of modification time")
	return cmd
}

func runSync(cmd *cobra.Command, a *app) error {
	if err := a.load(cmd); err != nil {
		return err
	}
	src, _ := cmd.Flags().GetString("src")
	dst, _ := cmd.Flags().GetString("dst")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	clean, _ := cmd.Flags().GetBool("clean")
	verifyHash := boolOverride(cmd.Flags(), "verify-hash", a.cfg.Sync.VerifyHash)

	if src == "" {
		src = a.layout.ProjectsDir
	}
	if dst == "" {
		dst = a.layout.PublicProjectsDir
	}

	matcher, err := ignore.NewMatcher(a.layout.Root, a.cfg.Sync.IgnoreFile)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}

	logger.SetDryRun(dryRun)
	defer logger.SetDryRun(false)

	out := cmd.OutOrStdout()
	summary, err := assetsync.Run(assetsync.Options{
		Src:        anchorPath(a.layout.Root, src),
		Dst:        anchorPath(a.layout.Root, dst),
		DryRun:     dryRun,
		Clean:      clean,
		VerifyHash: verifyHash,
		Ignore:     matcher,
		Out:        out,
	})
	if err != nil {
		if errors.Is(err, assetsync.ErrSourceNotFound) {
			return fsError(err)
		}
		if summary != nil {
			summary.Write(out)
		}
		return fsError(err)
	}
	summary.Write(out)
	return nil
}
