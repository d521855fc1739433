package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
)

// Repository is the subset of commit graph queries the resolver needs.
type Repository interface {
	RevParse(ctx context.Context, rev string) (string, error)
	ShortHash(ctx context.Context, rev string) (string, error)
	Branches(ctx context.Context) ([]string, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
	CountFirstParent(ctx context.Context, from, to string) (int, error)
}

// Options describes the branch conventions of the repository.
type Options struct {
	// Mainline is the branch release branches fork from.
	Mainline string
	// ReleasePrefix precedes X.Y in a release branch name.
	ReleasePrefix string
	// RemotePattern matches the remote name segment.
	RemotePattern string
}

// Resolver maps commits to release versions.
type Resolver struct {
	repo     Repository
	mainline string
	pattern  *regexp.Regexp
}

// errMainlineRequired is returned when no mainline branch is configured.
var errMainlineRequired = errors.New("mainline branch must be provided")

// New builds a resolver; the branch pattern is compiled once here.
func New(repo Repository, opts Options) (*Resolver, error) {
	if opts.Mainline == "" {
		return nil, errMainlineRequired
	}

	pattern, err := BranchPattern(opts.RemotePattern, opts.ReleasePrefix)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		repo:     repo,
		mainline: opts.Mainline,
		pattern:  pattern,
	}, nil
}

// BranchPattern builds the expression matching remotes/<remote>/<prefix>X.Y.
func BranchPattern(remotePattern, prefix string) (*regexp.Regexp, error) {
	expr := `^remotes/(?:` + remotePattern + `)/` + regexp.QuoteMeta(prefix) + `([0-9]+)\.([0-9]+)$`

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile release branch pattern: %w", err)
	}

	return pattern, nil
}

// ReleaseBranches lists remote release branches with their mainline fork
// points, newest version first.
func (r *Resolver) ReleaseBranches(ctx context.Context) ([]release.Branch, error) {
	names, err := r.repo.Branches(ctx)
	if err != nil {
		return nil, err
	}

	branches := make([]release.Branch, 0, len(names))

	for _, name := range names {
		version, ok := r.parseBranch(ctx, name)
		if !ok {
			continue
		}

		base, err := r.repo.MergeBase(ctx, r.mainline, name)
		if err != nil {
			return nil, err
		}

		branches = append(branches, release.Branch{
			Version:   version,
			Name:      name,
			MergeBase: base,
		})
	}

	slices.SortStableFunc(branches, func(a, b release.Branch) int {
		return b.Version.Compare(a.Version)
	})

	return branches, nil
}

// Resolve determines the release version of the given revision.
// It fails with release.ErrNoApplicableVersion when the commit predates
// every release branch.
func (r *Resolver) Resolve(ctx context.Context, revision string) (*release.Resolved, error) {
	ctx = logger.WithName(ctx, "resolver")

	commit, err := r.repo.RevParse(ctx, revision)
	if err != nil {
		return nil, err
	}

	branches, err := r.ReleaseBranches(ctx)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Release branches found", "count", len(branches), "commit", commit)

	selected, err := r.selectBranch(ctx, commit, branches)
	if err != nil {
		return nil, err
	}

	distance, err := r.repo.CountFirstParent(ctx, selected.MergeBase, commit)
	if err != nil {
		return nil, err
	}

	resolved := &release.Resolved{
		Version:  selected.Version,
		Branch:   selected.Name,
		Commit:   commit,
		Distance: distance,
	}

	if !resolved.IsRelease() {
		if resolved.ShortHash, err = r.repo.ShortHash(ctx, commit); err != nil {
			return nil, err
		}
	}

	logger.InfoKV(ctx, "Resolved version",
		"branch", selected.Name, "version", selected.Version.String(), "distance", distance)

	return resolved, nil
}

// selectBranch returns the first (newest) branch that forked before the commit.
// A branch qualifies when its mainline fork point equals either the merge base
// of the commit and the branch, which holds for commits on the mainline after
// the fork, or the merge base of the commit and the mainline, which holds for
// commits on the release branch itself or on a topic branch cut after the fork.
func (r *Resolver) selectBranch(ctx context.Context, commit string, branches []release.Branch) (*release.Branch, error) {
	var mainlineBase string

	for i := range branches {
		branch := &branches[i]

		branchBase, err := r.repo.MergeBase(ctx, commit, branch.Name)
		if err != nil {
			return nil, err
		}

		if branch.MergeBase == branchBase {
			return branch, nil
		}

		if mainlineBase == "" {
			if mainlineBase, err = r.repo.MergeBase(ctx, commit, r.mainline); err != nil {
				return nil, err
			}
		}

		if branch.MergeBase == mainlineBase {
			return branch, nil
		}

		logger.DebugKV(ctx, "Branch forked after commit", "branch", branch.Name)
	}

	return nil, fmt.Errorf("%w: commit %s predates every release branch", release.ErrNoApplicableVersion, commit)
}

func (r *Resolver) parseBranch(ctx context.Context, name string) (release.Version, bool) {
	match := r.pattern.FindStringSubmatch(name)
	if match == nil {
		return release.Version{}, false
	}

	major, errMajor := strconv.Atoi(match[1])
	minor, errMinor := strconv.Atoi(match[2])

	if errMajor != nil || errMinor != nil {
		logger.WarnKV(ctx, "Skipping release branch with out of range version", "branch", name)
		return release.Version{}, false
	}

	return release.Version{Major: major, Minor: minor}, true
}
