package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// errUnexpectedOutput is returned when git prints something we cannot parse.
var errUnexpectedOutput = errors.New("unexpected git output")

// Repository answers commit graph queries by running git.
type Repository struct {
	runner Runner
}

// NewRepository wraps a runner that executes git.
func NewRepository(runner Runner) *Repository {
	return &Repository{
		runner: runner,
	}
}

// RevParse resolves a revision to its full commit identifier.
func (r *Repository) RevParse(ctx context.Context, rev string) (string, error) {
	id, err := r.runner.Output(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rev, err)
	}

	return id, nil
}

// ShortHash resolves a revision to its abbreviated commit identifier.
func (r *Repository) ShortHash(ctx context.Context, rev string) (string, error) {
	id, err := r.runner.Output(ctx, "rev-parse", "--short", rev)
	if err != nil {
		return "", fmt.Errorf("abbreviate %s: %w", rev, err)
	}

	return id, nil
}

// Branches lists local and remote-tracking branches as printed by
// `git branch --all`, e.g. "remotes/origin/release/0.50" or "* master".
func (r *Repository) Branches(ctx context.Context) ([]string, error) {
	branches, err := r.runner.Lines(ctx, "branch", "--all", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	return branches, nil
}

// MergeBase returns the nearest common ancestor of two revisions.
func (r *Repository) MergeBase(ctx context.Context, a, b string) (string, error) {
	base, err := r.runner.Output(ctx, "merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("merge base of %s and %s: %w", a, b, err)
	}

	return base, nil
}

// CountFirstParent counts first-parent commits reachable from `to` but not from `from`.
func (r *Repository) CountFirstParent(ctx context.Context, from, to string) (int, error) {
	out, err := r.runner.Output(ctx, "rev-list", "--count", "--first-parent", from+".."+to)
	if err != nil {
		return 0, fmt.Errorf("count commits %s..%s: %w", from, to, err)
	}

	count, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("%w: rev-list count %q", errUnexpectedOutput, out)
	}

	return count, nil
}
