package calculator

import (
	"context"
	"fmt"

	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
)

// Resolver maps a revision to the release it belongs to.
type Resolver interface {
	Resolve(ctx context.Context, revision string) (*release.Resolved, error)
}

// Input is a single version calculation request.
type Input struct {
	// Version is a manual X.Y.Z override; empty means detect from git.
	Version string
	// Suffix is an optional custom tag.
	Suffix string
	// Offering is the packaging tier.
	Offering release.Offering
	// Variant selects the grammar.
	Variant release.Variant
	// Revision is the commit to describe when detecting.
	Revision string
}

// Result is everything known about the computed version.
type Result struct {
	// Version is the formatted version string.
	Version string `yaml:"version"`
	// Variant is the grammar used.
	Variant release.Variant `yaml:"variant"`
	// Offering is the packaging tier.
	Offering release.Offering `yaml:"offering"`
	// BaseVersion is the X.Y.Z part.
	BaseVersion string `yaml:"base_version"`
	// Branch is the selected release branch; empty for manual overrides.
	Branch string `yaml:"branch,omitempty"`
	// Commit is the described commit; empty for manual overrides.
	Commit string `yaml:"commit,omitempty"`
	// ShortHash is set for development versions only.
	ShortHash string `yaml:"short_hash,omitempty"`
	// Distance is the first-parent distance from the branch point.
	Distance int `yaml:"distance"`
	// Release reports whether this is a release version.
	Release bool `yaml:"release"`
	// Manual reports whether the version was supplied by the caller.
	Manual bool `yaml:"manual"`
}

// Calculate produces the version for the input. The resolver is consulted
// only when no manual version is supplied, so it may be nil in that case.
func Calculate(ctx context.Context, res Resolver, in Input) (*Result, error) {
	if in.Variant == "" {
		in.Variant = release.Binary
	}

	variant, err := release.ParseVariant(string(in.Variant))
	if err != nil {
		return nil, err
	}

	in.Variant = variant

	if in.Offering == "" {
		in.Offering = release.Community
	}

	if in.Version != "" {
		return manual(in)
	}

	if in.Revision == "" {
		in.Revision = DefaultRevision
	}

	resolved, err := res.Resolve(ctx, in.Revision)
	if err != nil {
		return nil, fmt.Errorf("resolve version: %w", err)
	}

	req := release.RequestFor(resolved, in.Variant, in.Offering, in.Suffix)

	logger.DebugKV(ctx, "Formatting detected version", "variant", in.Variant, "release", resolved.IsRelease())

	return &Result{
		Version:     release.Format(req),
		Variant:     in.Variant,
		Offering:    in.Offering,
		BaseVersion: req.Version,
		Branch:      resolved.Branch,
		Commit:      resolved.Commit,
		ShortHash:   req.ShortHash,
		Distance:    req.Distance,
		Release:     resolved.IsRelease(),
	}, nil
}

// manual formats a caller supplied version with the release templates.
func manual(in Input) (*Result, error) {
	if err := release.ValidateVersion(in.Version); err != nil {
		return nil, err
	}

	req := release.Request{
		Variant:  in.Variant,
		Version:  in.Version,
		Offering: in.Offering,
		Suffix:   in.Suffix,
	}

	return &Result{
		Version:     release.Format(req),
		Variant:     in.Variant,
		Offering:    in.Offering,
		BaseVersion: in.Version,
		Release:     true,
		Manual:      true,
	}, nil
}
