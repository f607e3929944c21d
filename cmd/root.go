package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/projscan/internal/configs"
	kerrors "github.com/PolarWolf314/projscan/internal/errors"
	logger "github.com/PolarWolf314/projscan/internal/logging"
	"github.com/PolarWolf314/projscan/internal/output"
	"github.com/PolarWolf314/projscan/internal/scan"
	"github.com/PolarWolf314/projscan/internal/ui"
	"github.com/PolarWolf314/projscan/internal/workflows"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	scanMode         string
	outputFormat     string
	pathsOnly        bool
	strict           bool
	hidden           bool
	noGlobalExcludes bool
	includes         []string
)

// NewRootCmd builds the projscan command tree. Flags are bound to package
// state, so build a fresh tree for every execution.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projscan",
		Short: "List the project, target and configuration combinations in a repository",
		Long: `Finds the enclosing git repository, walks it for project.json files and
prints one project:target:configuration line for every configuration of every
target, in the order they appear in each file.

By default the walk honours .gitignore, .ignore, .git/info/exclude and your
global core.excludesfile, and skips hidden entries. Use --mode simple to walk
every directory except those starting with a dot.

Settings are read from ~/.config/projscan/config.toml, then from
.projscan.toml at the repository root, then from --config. Flags win.

Examples:
  # List every triple in the current repository
  projscan

  # List the project files instead
  projscan --paths

  # Only look below apps/, as JSON lines
  projscan --include 'apps/**' --format json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Writer:  cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: runScan,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "read extra settings from this TOML file")

	flags := rootCmd.Flags()
	flags.StringVar(&scanMode, "mode", string(scan.ModeIgnore), "traversal mode: ignore or simple")
	flags.StringVar(&outputFormat, "format", string(output.FormatTriples), "output format: triples, paths or json")
	flags.BoolVar(&pathsOnly, "paths", false, "print project file paths (same as --format paths)")
	flags.BoolVar(&strict, "strict", false, "stop at the first directory that cannot be read")
	flags.BoolVar(&hidden, "hidden", false, "include hidden files and directories in ignore mode")
	flags.BoolVar(&noGlobalExcludes, "no-global-excludes", false, "do not read core.excludesfile from your git config")
	flags.StringArrayVar(&includes, "include", nil, "only report project files whose path matches this glob (repeatable)")
	rootCmd.MarkFlagsMutuallyExclusive("format", "paths")

	rootCmd.AddCommand(newRootPathCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	Logger.Infof("Starting scan")

	root, err := locateRoot()
	if err != nil {
		return err
	}

	config, err := loadConfig(root, cmd.Flags())
	if err != nil {
		return err
	}

	mode, err := scan.ParseMode(config.Scan.Mode)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(config.Output.Format)
	if err != nil {
		return err
	}

	result, err := workflows.Scan(cmd.Context(), workflows.ScanOptions{
		Root:           root,
		Mode:           mode,
		Format:         format,
		Strict:         config.Scan.Strict,
		Hidden:         config.Scan.Hidden,
		GlobalExcludes: config.Scan.GlobalExcludes,
		IgnoreFiles:    config.Scan.IgnoreFiles,
		Exclude:        config.Scan.Exclude,
		Include:        config.Scan.Include,
		Stdout:         cmd.OutOrStdout(),
		Logger:         Logger,
	})
	if err != nil {
		return err
	}

	Logger.Infof("Scanned %s in %s mode: %d files, %d project files, %d rows",
		ui.Path.Sprint(root), ui.Highlight.Sprint(mode), result.FilesWalked, result.ProjectFiles, result.Rows)
	if result.Skipped > 0 || result.WalkErrors > 0 || result.Excluded > 0 {
		Logger.Infof("Some project files were left out %s",
			ui.Muted.Sprintf("skipped: %d, traversal errors: %d, not included: %d", result.Skipped, result.WalkErrors, result.Excluded))
	}
	return nil
}

// locateRoot finds the repository enclosing the working directory.
func locateRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	Logger.Debugf("Working directory: %s", wd)

	root, err := workflows.LocateRoot(wd)
	if err != nil {
		return "", err
	}
	Logger.Debugf("Repository root: %s", root)
	return root, nil
}

// loadConfig merges the settings files for root, then --config, then any
// flags the user set explicitly.
func loadConfig(root string, flags *pflag.FlagSet) (*configs.Config, error) {
	config, loaded, err := configs.Load(root)
	if err != nil {
		return nil, err
	}
	for _, path := range loaded {
		Logger.Debugf("Loaded settings from %s", path)
	}

	if configPath != "" {
		found, err := config.Merge(configPath)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: %s does not exist", kerrors.ErrInvalidConfig, configPath)
		}
		Logger.Debugf("Loaded settings from %s", configPath)
	}

	if flags.Changed("mode") {
		config.Scan.Mode = scanMode
	}
	if flags.Changed("format") {
		config.Output.Format = outputFormat
	}
	if flags.Changed("paths") && pathsOnly {
		config.Output.Format = string(output.FormatPaths)
	}
	if flags.Changed("strict") {
		config.Scan.Strict = strict
	}
	if flags.Changed("hidden") {
		config.Scan.Hidden = hidden
	}
	if flags.Changed("no-global-excludes") {
		config.Scan.GlobalExcludes = !noGlobalExcludes
	}
	if flags.Changed("include") {
		config.Scan.Include = includes
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	Logger = logger.Logger{}

	scanMode = string(scan.ModeIgnore)
	outputFormat = string(output.FormatTriples)
	pathsOnly = false
	strict = false
	hidden = false
	noGlobalExcludes = false
	includes = nil
}
