/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fulmenhq/folio/internal/gitctx"
	"github.com/fulmenhq/folio/internal/ops"
	"github.com/fulmenhq/folio/internal/printer"
	"github.com/fulmenhq/folio/pkg/buildinfo"
	"github.com/fulmenhq/folio/pkg/config"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

// app carries what a command tree resolves once per invocation.
type app struct {
	cfg    *config.Config
	layout content.Layout
	loaded bool
}

// subcommand pairs a command factory with its help group.
type subcommand struct {
	group ops.CommandGroup
	build func(*app) *cobra.Command
}

var subcommands = []subcommand{
	{ops.GroupContent, newAuditCmd},
	{ops.GroupContent, newIndexCmd},
	{ops.GroupContent, newRefreshCmd},
	{ops.GroupContent, newSitemapCmd},
	{ops.GroupPublish, newSyncCmd},
	{ops.GroupSupport, newVersionCmd},
}

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand(reg *ops.Registry) *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Build support for a content-driven portfolio site",
		Long: `Folio audits project metadata, builds the projects index and publishes
project assets for a content/projects/<category>/<slug> tree.

Examples:
   folio audit               # Check every meta.json, index.mdx and assets folder
   folio index               # Write content/projects_index.json
   folio sync --clean        # Mirror assets into public/projects
   folio sync --dry-run      # Preview the sync without touching files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("root", "", "Repository root (default: enclosing git work tree, else current directory)")
	cmd.PersistentFlags().String("config", "", "Config file (default: folio.yaml in the repository root)")
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version, _ = buildinfo.Resolve()
	cmd.SetVersionTemplate("folio {{.Version}}\n")

	registerSubcommands(cmd, reg, a)

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c != cmd {
			c.Println(c.Long)
			c.Println()
			c.Print(c.UsageString())
			return
		}
		c.Println(c.Long)
		for _, group := range ops.GroupOrder {
			cmds := reg.GetCommandsByGroup(group)
			if len(cmds) == 0 {
				continue
			}
			c.Println()
			c.Printf("%s:\n", group.Title())
			for _, r := range cmds {
				c.Printf("  %-12s %s\n", r.Name, r.Description)
			}
		}
		c.Println()
		c.Println("Flags:")
		c.Print(c.LocalFlags().FlagUsages())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command and records
// their help group in reg.
func registerSubcommands(cmd *cobra.Command, reg *ops.Registry, a *app) {
	for _, s := range subcommands {
		sub := s.build(a)
		cmd.AddCommand(sub)
		if err := reg.Register(sub.Name(), s.group, sub, sub.Short); err != nil {
			panic(fmt.Sprintf("Failed to register %s command: %v", sub.Name(), err))
		}
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand(ops.GetRegistry())

// Execute runs the command tree and exits with the code carried by the error.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := exitcode.From(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		os.Exit(code)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if noColor {
		printer.SetColor(false)
	}

	logCfg := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "folio",
	}

	if err := logger.Initialize(logCfg); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}

// load resolves the repository root, reads configuration and derives the
// content layout. Commands call it lazily so `folio version` works anywhere.
func (a *app) load(cmd *cobra.Command) error {
	if a.loaded {
		return nil
	}
	rootFlag, _ := cmd.Flags().GetString("root")
	configFlag, _ := cmd.Flags().GetString("config")

	root, err := resolveRoot(rootFlag)
	if err != nil {
		return exitcode.Wrap(exitcode.FileSystemError, err)
	}
	if configFlag != "" && !filepath.IsAbs(configFlag) {
		if abs, err := filepath.Abs(configFlag); err == nil {
			configFlag = abs
		}
	}

	cfg, err := config.Load(root, configFlag)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}
	layout, err := content.NewLayout(root, cfg)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}
	logger.Debug("Resolved layout",
		logger.String("root", layout.Root),
		logger.String("projects", layout.ProjectsDir),
		logger.String("config", cfg.File))

	a.cfg, a.layout, a.loaded = cfg, layout, true
	return nil
}

// resolveRoot picks --root, then the enclosing git work tree, then the
// current directory.
func resolveRoot(flag string) (string, error) {
	if flag != "" {
		abs, err := filepath.Abs(flag)
		if err != nil {
			return "", err
		}
		if st, err := os.Stat(abs); err != nil || !st.IsDir() {
			return "", fmt.Errorf("root directory not found: %s", abs)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	root, err := gitctx.RepoRoot(wd)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, gitctx.ErrNotRepo) {
		logger.Debug("Git root detection failed", logger.Err(err))
	}
	return wd, nil
}

// anchorPath resolves a user-supplied path against the repository root.
func anchorPath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// boolOverride returns the flag value when the user set it, else def.
func boolOverride(flags *pflag.FlagSet, name string, def bool) bool {
	if !flags.Changed(name) {
		return def
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return def
	}
	return v
}

// fsError maps a filesystem failure to its exit code.
func fsError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return exitcode.Wrap(exitcode.PermissionError, err)
	}
	return exitcode.Wrap(exitcode.FileSystemError, err)
}
