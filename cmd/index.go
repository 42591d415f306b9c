/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/fulmenhq/folio/pkg/index"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/spf13/cobra"
)

func newIndexCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the consolidated projects index",
		Long: `Index reads every project's meta.json in the configured categories, resolves
hero, cover and gallery assets and writes one sorted JSON array
(featured first, then category, order, newest year, title).

The output file is replaced wholesale on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd, a)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Index file (default: <content_dir>/<index_file>)")
	cmd.Flags().Bool("dimensions", false, "Add heroWidth/heroHeight for image heroes")
	cmd.Flags().Bool("check", false, "Validate the index against the record schema before writing")
	return cmd
}

func runIndex(cmd *cobra.Command, a *app) error {
	if err := a.load(cmd); err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	check, _ := cmd.Flags().GetBool("check")
	dimensions := boolOverride(cmd.Flags(), "dimensions", a.cfg.Index.ImageDimensions)

	res, err := index.Build(a.layout, index.Options{Dimensions: dimensions})
	if err != nil {
		return fsError(err)
	}
	data, err := index.Encode(res.Records)
	if err != nil {
		return err
	}

	if check {
		result, err := index.Check(data)
		if err != nil {
			return exitcode.Wrap(exitcode.ConfigError, err)
		}
		if !result.Valid {
			for _, e := range result.Errors {
				logger.Error("Index record invalid", logger.String("path", e.Path), logger.String("message", e.Message))
			}
			return exitcode.Wrap(exitcode.ValidationError, errors.New(result.Summary()))
		}
	}

	path := a.layout.IndexFile
	if output != "" {
		path = anchorPath(a.layout.Root, output)
	}
	if err := index.Write(path, data); err != nil {
		return fsError(err)
	}

	if len(res.Skipped) > 0 {
		logger.Warn("Projects skipped", logger.Int("count", len(res.Skipped)))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d projects to: %s\n", len(res.Records), content.Rel(a.layout.Root, path))
	return nil
}
