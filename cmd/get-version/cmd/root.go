package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/get-version/internal/config"
	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
	"github.com/oshokin/get-version/internal/service/calculator"
	"github.com/oshokin/get-version/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// repoDir is the working tree git runs in.
	repoDir string
	// revision is the commit to describe.
	revision string
	// mainline overrides the mainline branch from the settings.
	mainline string
	// enterprise selects the enterprise offering.
	enterprise bool
	// variant selects the packaging grammar.
	variant release.Variant
	// output selects text, json or yaml output.
	output string
	// logLevel overrides the log level from the settings.
	logLevel string

	// rootCmd prints the version of the current commit.
	rootCmd = &cobra.Command{
		Use:   "get-version [version] [suffix]",
		Short: "Print the release version of the current commit.",
		Long: `Determine the version of the current build from git history.

The version is either a release version, taken from the nearest older
remote release/X.Y branch that the commit sits exactly on (X.Y.0), or a
development version made of that release version, the number of
first-parent commits since the branch point and the short commit hash.

A manual X.Y.Z version skips git entirely. An optional suffix is appended
after the offering. The result is rendered for one of three variants:

  binary  0.50.1-community        0.50.0+12~7e1eef94-community
  deb     0.50.1-community-1      0.50.0+12~7e1eef94-community-1
  rpm     0.50.1-1.community      0.50.0-0.12.7e1eef94.community

The version is printed to stdout without a trailing newline.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &calculator.Options{
				ConfigPath: configPath,
				RepoDir:    repoDir,
				Revision:   revision,
				Mainline:   mainline,
				Enterprise: enterprise,
				Output:     output,
				LogLevel:   logLevel,
			}

			// Only an explicit --variant overrides the configured default.
			if cmd.Flags().Changed("variant") {
				options.Variant = variant
			}

			if len(args) > 0 {
				options.Version = args[0]
			}

			if len(args) > 1 {
				options.Suffix = args[1]
			}

			return calculator.Run(ctx, options, cmd.OutOrStdout())
		},
	}
)

// Execute runs the get-version CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	attachConfigCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "get-version failed", "error", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&repoDir, "repo", "C", "", "run git in this directory instead of the current one")
	flags.StringVar(&revision, "revision", calculator.DefaultRevision, "commit to describe")
	flags.StringVar(&mainline, "mainline", "", "mainline branch release branches fork from (default from settings)")
	flags.BoolVar(&enterprise, "enterprise", false, "set the current offering to enterprise (default community)")
	flags.Var(&variant, "variant", "version string variant: binary, deb or rpm")
	flags.StringVarP(&output, "output", "o", string(calculator.OutputText), "output format: text, json or yaml")
	flags.StringVar(&logLevel, "log-level", "", "log level written to stderr (default from settings)")
}
