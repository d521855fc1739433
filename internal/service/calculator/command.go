package calculator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/get-version/internal/config"
	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
	"github.com/oshokin/get-version/internal/repository/git"
	"github.com/oshokin/get-version/internal/service/resolver"
)

// DefaultRevision is the commit described when none is given.
const DefaultRevision = "HEAD"

// errUnknownLogLevel is returned for log levels zap does not know.
var errUnknownLogLevel = errors.New("unknown log level")

// Options are the inputs accepted by the get-version entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// RepoDir is the working tree git runs in; empty means the current directory.
	RepoDir string
	// Revision is the commit to describe.
	Revision string
	// Mainline overrides the configured mainline branch.
	Mainline string
	// Version is the manual X.Y.Z override.
	Version string
	// Suffix is an optional custom tag.
	Suffix string
	// Enterprise selects the enterprise offering.
	Enterprise bool
	// Variant overrides the configured default variant.
	Variant release.Variant
	// Output is text, json or yaml.
	Output string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// Run computes the version and writes it to w. Nothing is written unless
// every step succeeds.
func Run(ctx context.Context, opts *Options, w io.Writer) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "get-version")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	output, err := ParseOutput(opts.Output)
	if err != nil {
		return err
	}

	variant := opts.Variant
	if variant == "" {
		variant = cfg.DefaultVariant
	}

	in := Input{
		Version:  opts.Version,
		Suffix:   opts.Suffix,
		Offering: release.OfferingFor(opts.Enterprise),
		Variant:  variant,
		Revision: opts.Revision,
	}

	var res Resolver

	if in.Version == "" {
		if res, err = newResolver(cfg, opts.RepoDir); err != nil {
			return err
		}
	}

	result, err := Calculate(ctx, res, in)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Version calculated", "version", result.Version, "manual", result.Manual)

	return Render(w, output, result)
}

// applyOverrides lays command line values over the loaded settings.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.Mainline != "" {
		cfg.MainlineBranch = opts.Mainline
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	return config.Validate(cfg)
}

// newResolver wires the git runner, repository and resolver for the settings.
func newResolver(cfg *config.Config, repoDir string) (*resolver.Resolver, error) {
	runner := git.NewExecRunner(cfg.GitBinary, git.WithDir(repoDir), git.WithTimeout(cfg.Timeout))

	res, err := resolver.New(git.NewRepository(runner), resolver.Options{
		Mainline:      cfg.MainlineBranch,
		ReleasePrefix: cfg.ReleasePrefix,
		RemotePattern: cfg.RemotePattern,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize resolver: %w", err)
	}

	return res, nil
}
