/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/fulmenhq/folio/internal/gitctx"
	"github.com/fulmenhq/folio/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the folio version",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show detailed build and git information")
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	version, source := buildinfo.Resolve()

	var git *gitctx.Info
	if extended {
		start, _ := cmd.Flags().GetString("root")
		if start == "" {
			start, _ = os.Getwd()
		}
		if info, err := gitctx.Describe(start); err == nil {
			git = info
		}
	}

	if jsonOutput {
		versionInfo := map[string]interface{}{
			"version":   version,
			"source":    source,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		if extended {
			versionInfo["gitCommit"] = "unknown"
			if git != nil && git.Commit != "" {
				versionInfo["gitCommit"] = git.ShortCommit()
				versionInfo["gitBranch"] = git.Branch
				versionInfo["gitDirty"] = git.Dirty
			}
		}
		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		_, _ = fmt.Fprintln(out, string(jsonData))
		return nil
	}

	_, _ = fmt.Fprintf(out, "folio %s\n", version)
	_, _ = fmt.Fprintf(out, "Source: %s\n", source)
	if extended {
		if git != nil && git.Commit != "" {
			_, _ = fmt.Fprintf(out, "Git commit: %s\n", git.ShortCommit())
			if git.Branch != "" {
				_, _ = fmt.Fprintf(out, "Git branch: %s\n", git.Branch)
			}
			if git.Dirty {
				_, _ = fmt.Fprintf(out, "Git status: dirty (uncommitted changes)\n")
			} else {
				_, _ = fmt.Fprintf(out, "Git status: clean\n")
			}
		} else {
			_, _ = fmt.Fprintf(out, "Git commit: unknown\n")
		}
	}
	_, _ = fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	_, _ = fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
