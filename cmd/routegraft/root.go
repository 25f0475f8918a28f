package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calumari/routegraft/internal/runner"
)

// cli carries state shared by the subcommands.
type cli struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd creates the routegraft command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "routegraft",
		Short:         "routegraft instruments route modules for the dev tools overlay",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.AddCommand(newRewriteCmd(c))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), deriveVersion())
			return err
		},
	}
}

type rewriteFlags struct {
	config            string
	configFile        string
	pluginImports     string
	pluginImportsFile string
	settings          string
	write             bool
	diff              bool
	verify            bool
	jobs              int
}

func newRewriteCmd(c *cli) *cobra.Command {
	var f rewriteFlags
	cmd := &cobra.Command{
		Use:   "rewrite [files...]",
		Short: "Instrument route modules",
		Long: `Rewrite wraps the default export of each module, and its links export, with
the overlay's runtime wrappers and injects the imports they need.

A single file is printed to stdout. Several files need --write or --diff.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) > 1 && !s.Write && !f.diff {
				return errors.New("several files need --write or --diff")
			}
			s.Logger = c.logger
			results, err := runner.Run(cmd.Context(), s, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case f.diff:
					d, err := r.Diff()
					if err != nil {
						return err
					}
					fmt.Fprint(out, d)
				case !s.Write:
					fmt.Fprint(out, r.Output)
				}
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "Config descriptor as JSON, e.g. '{\"config\": {}, \"plugins\": \"[a]\"}'")
	fl.StringVar(&f.configFile, "config-file", "", "Read the config descriptor from a JSON file")
	fl.StringVar(&f.pluginImports, "plugin-imports", "", "Text placed verbatim above instrumented modules")
	fl.StringVar(&f.pluginImportsFile, "plugin-imports-file", "", "Read --plugin-imports from a file")
	fl.StringVar(&f.settings, "settings", "", "YAML settings file")
	fl.BoolVarP(&f.write, "write", "w", false, "Rewrite files in place")
	fl.BoolVar(&f.diff, "diff", false, "Print unified diffs instead of output")
	fl.BoolVar(&f.verify, "verify", false, "Re-parse output before accepting it")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "Files processed in parallel (default: number of CPUs)")
	cmd.MarkFlagsMutuallyExclusive("config", "config-file")
	cmd.MarkFlagsMutuallyExclusive("plugin-imports", "plugin-imports-file")
	return cmd
}

// resolve loads the settings file, if any, and applies the flags over it.
func (f rewriteFlags) resolve(cmd *cobra.Command) (runner.Settings, error) {
	var s runner.Settings
	if f.settings != "" {
		var err error
		if s, err = runner.LoadSettings(f.settings); err != nil {
			return s, err
		}
	}
	changed := cmd.Flags().Changed
	switch {
	case changed("config"):
		s.Descriptor = f.config
	case f.configFile != "":
		data, err := os.ReadFile(f.configFile)
		if err != nil {
			return s, fmt.Errorf("read config: %w", err)
		}
		s.Descriptor = string(data)
	}
	switch {
	case changed("plugin-imports"):
		s.PluginImports = f.pluginImports
	case f.pluginImportsFile != "":
		data, err := os.ReadFile(f.pluginImportsFile)
		if err != nil {
			return s, fmt.Errorf("read plugin imports: %w", err)
		}
		s.PluginImports = string(data)
	}
	if changed("verify") {
		s.Verify = f.verify
	}
	if changed("jobs") {
		s.Jobs = f.jobs
	}
	s.Write = f.write
	return s, nil
}
