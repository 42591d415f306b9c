/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"io"
	"path/filepath"

	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/fulmenhq/folio/pkg/index"
	"github.com/fulmenhq/folio/pkg/sitemap"
	"github.com/spf13/cobra"
)

func newSitemapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml for the site",
		Long: `Sitemap lists the home, about and projects pages, one page per category
and every indexed project, in index order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSitemap(cmd, a)
		},
	}
	cmd.Flags().String("base-url", "", "Absolute site URL (default: site.url from config)")
	cmd.Flags().StringP("output", "o", "", "Output file, or - for stdout (default: <public_dir>/sitemap.xml)")
	return cmd
}

func runSitemap(cmd *cobra.Command, a *app) error {
	if err := a.load(cmd); err != nil {
		return err
	}
	baseURL, _ := cmd.Flags().GetString("base-url")
	output, _ := cmd.Flags().GetString("output")
	if baseURL == "" {
		baseURL = a.cfg.Site.URL
	}

	res, err := index.Build(a.layout, index.Options{})
	if err != nil {
		return fsError(err)
	}
	entries, err := sitemap.Entries(baseURL, a.layout.Categories, res.Records)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}
	data, err := sitemap.Render(entries)
	if err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(a.layout.PublicDir, "sitemap.xml")
	} else if output != "-" {
		output = anchorPath(a.layout.Root, output)
	}
	if err := writeReport(cmd.OutOrStdout(), output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return fsError(err)
	}
	return nil
}
