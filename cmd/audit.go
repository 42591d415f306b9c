/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fulmenhq/folio/pkg/audit"
	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/spf13/cobra"
)

func newAuditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit project metadata, documents and assets",
		Long: `Audit walks content/projects/<category>/<slug> and reports, per project:
missing index.mdx or meta.json, unparseable JSON, missing or mistyped required
fields, slug and category mismatches, unknown categories, a missing assets/
folder, a missing hero file and "galleray" typos.

Issues never stop the scan. The exit code is 0 unless --fail-on-issues is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd, a)
		},
	}
	cmd.Flags().String("format", "text", "Report format (text|json|markdown)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("fail-on-issues", false, "Exit with the validation code when any project has issues")
	return cmd
}

func runAudit(cmd *cobra.Command, a *app) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	failOnIssues, _ := cmd.Flags().GetBool("fail-on-issues")

	format, err := audit.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if err := a.load(cmd); err != nil {
		return err
	}

	if output != "" && output != "-" {
		output = anchorPath(a.layout.Root, output)
	}

	report, err := audit.Run(a.layout)
	if err != nil {
		return fsError(err)
	}

	if err := writeReport(cmd.OutOrStdout(), output, func(w io.Writer) error {
		return audit.Write(w, report, format)
	}); err != nil {
		return fsError(err)
	}

	logger.Debug("Audit complete", logger.Int("projects", report.Total), logger.Int("with_issues", report.WithIssues))
	if failOnIssues && !report.Clean() {
		return exitcode.Wrap(exitcode.ValidationError,
			fmt.Errorf("%d of %d projects have issues", report.WithIssues, report.Total))
	}
	return nil
}

// writeReport sends render output to path, or to stdout when path is empty or "-".
func writeReport(stdout io.Writer, path string, render func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return render(stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := render(f); err != nil {
		return err
	}
	logger.Info("Report written", logger.String("path", path))
	return nil
}
