package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/oshokin/get-version/internal/domain/release"
)

const (
	rel049 = "remotes/origin/release/0.49"
	rel050 = "remotes/origin/release/0.50"
)

// history builds the shared test topology:
//
//	m1 - m2 - m3 - m4 - m5 - m6 ... m17     master
//	      \              \    \
//	       r49a           \    f1           topic branch off m6
//	                       r50a - r50b      release/0.50
//
// release/0.49 forks at m2 and release/0.50 at m5.
func history() *graph {
	g := newGraph().commit("m1").chain("m1", "m2", "m3", "m4", "m5")

	for i := 6; i <= 17; i++ {
		g.commit(fmt.Sprintf("m%d", i), fmt.Sprintf("m%d", i-1))
	}

	g.chain("m2", "r49a").chain("m5", "r50a", "r50b").commit("f1", "m6")

	return g.
		branch("* master", "master", "m17").
		branch("remotes/origin/HEAD -> origin/master", "remotes/origin/HEAD", "m17").
		branch("remotes/origin/master", "remotes/origin/master", "m17").
		branch(rel049, rel049, "r49a").
		branch(rel050, rel050, "r50b").
		branch("release/0.51", "release/0.51", "m17").
		branch("remotes/origin/release/next", "remotes/origin/release/next", "m17").
		branch("remotes/fork-1/release/0.60", "remotes/fork-1/release/0.60", "m17")
}

func newResolver(t *testing.T, g *graph) *Resolver {
	t.Helper()

	r, err := New(g, Options{
		Mainline:      "master",
		ReleasePrefix: "release/",
		RemotePattern: "[a-zA-Z0-9]+",
	})
	require.NoError(t, err)

	return r
}

// TestReleaseBranches keeps only remote release/X.Y branches, newest first.
func TestReleaseBranches(t *testing.T) {
	t.Parallel()

	branches, err := newResolver(t, history()).ReleaseBranches(context.Background())
	require.NoError(t, err)
	require.Equal(t, []release.Branch{
		{Version: release.Version{Major: 0, Minor: 50}, Name: rel050, MergeBase: "m5"},
		{Version: release.Version{Major: 0, Minor: 49}, Name: rel049, MergeBase: "m2"},
	}, branches)
}

// TestReleaseBranches_NumericOrder sorts by numbers, not by text.
func TestReleaseBranches_NumericOrder(t *testing.T) {
	t.Parallel()

	g := newGraph().commit("a").chain("a", "b", "c", "d").
		branch("master", "master", "d").
		branch("remotes/origin/release/0.9", "remotes/origin/release/0.9", "b").
		branch("remotes/origin/release/0.10", "remotes/origin/release/0.10", "c").
		branch("remotes/origin/release/1.0", "remotes/origin/release/1.0", "d")

	branches, err := newResolver(t, g).ReleaseBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 3)
	require.Equal(t, "1.0.0", branches[0].Version.String())
	require.Equal(t, "0.10.0", branches[1].Version.String())
	require.Equal(t, "0.9.0", branches[2].Version.String())
}

// TestReleaseBranches_SkipsOverflowingNumbers ignores branches whose numbers do not fit an int.
func TestReleaseBranches_SkipsOverflowingNumbers(t *testing.T) {
	t.Parallel()

	huge := "remotes/origin/release/99999999999999999999.1"
	g := newGraph().commit("a").chain("a", "b").
		branch("master", "master", "b").
		branch(huge, huge, "b").
		branch(rel050, rel050, "a")

	branches, err := newResolver(t, g).ReleaseBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 1)
	require.Equal(t, rel050, branches[0].Name)
}

// TestResolve covers each topology the branch selection has to handle.
func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		revision string
		branch   string
		version  string
		distance int
	}{
		{"mainline head", "master", rel050, "0.50.0", 12},
		{"fork point is the release", "m5", rel050, "0.50.0", 0},
		{"commit on release branch", "r50b", rel050, "0.50.0", 2},
		{"topic branch after fork", "f1", rel050, "0.50.0", 2},
		{"between two forks", "m3", rel049, "0.49.0", 1},
		{"older fork point", "m2", rel049, "0.49.0", 0},
		{"commit on older release branch", "r49a", rel049, "0.49.0", 1},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolved, err := newResolver(t, history()).Resolve(context.Background(), tc.revision)
			require.NoError(t, err)
			require.Equal(t, tc.branch, resolved.Branch)
			require.Equal(t, tc.version, resolved.Version.String())
			require.Equal(t, tc.distance, resolved.Distance)
			require.Equal(t, tc.distance == 0, resolved.IsRelease())

			if resolved.IsRelease() {
				require.Empty(t, resolved.ShortHash)
			} else {
				require.Equal(t, "h"+resolved.Commit, resolved.ShortHash)
			}
		})
	}
}

// TestResolve_MainlineScenario renders the DEB version twelve commits past release/0.50.
func TestResolve_MainlineScenario(t *testing.T) {
	t.Parallel()

	resolved, err := newResolver(t, history()).Resolve(context.Background(), "HEAD-less-master")
	require.ErrorIs(t, err, release.ErrCommandFailed)
	require.Nil(t, resolved)

	resolved, err = newResolver(t, history()).Resolve(context.Background(), "master")
	require.NoError(t, err)

	got := release.Format(release.RequestFor(resolved, release.Deb, release.Community, ""))
	require.Equal(t, "0.50.0+12~hm17-community-1", got)
}

// TestResolve_PredatesAllBranches fails for commits older than every fork point.
func TestResolve_PredatesAllBranches(t *testing.T) {
	t.Parallel()

	_, err := newResolver(t, history()).Resolve(context.Background(), "m1")
	require.ErrorIs(t, err, release.ErrNoApplicableVersion)

	empty := newGraph().commit("a").branch("* master", "master", "a")

	_, err = newResolver(t, empty).Resolve(context.Background(), "a")
	require.ErrorIs(t, err, release.ErrNoApplicableVersion)
}

// TestNew_Validation rejects a blank mainline and broken remote patterns.
func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(newGraph(), Options{})
	require.ErrorIs(t, err, errMainlineRequired)

	_, err = New(newGraph(), Options{Mainline: "master", RemotePattern: "("})
	require.Error(t, err)
}

// TestBranchPattern quotes the prefix and constrains the remote segment.
func TestBranchPattern(t *testing.T) {
	t.Parallel()

	pattern, err := BranchPattern("[a-zA-Z0-9]+", "release/")
	require.NoError(t, err)

	require.True(t, pattern.MatchString("remotes/origin/release/0.50"))
	require.True(t, pattern.MatchString("remotes/upstream2/release/12.3"))
	require.False(t, pattern.MatchString("release/0.50"))
	require.False(t, pattern.MatchString("remotes/my-fork/release/0.50"))
	require.False(t, pattern.MatchString("remotes/origin/release/0.50.1"))
	require.False(t, pattern.MatchString("remotes/origin/releasex0.50"))

	dotted, err := BranchPattern("origin", "rel.")
	require.NoError(t, err)
	require.True(t, dotted.MatchString("remotes/origin/rel.1.2"))
	require.False(t, dotted.MatchString("remotes/origin/relx1.2"))
}

// TestResolve_Monotonic checks distance growth along a linear mainline.
func TestResolve_Monotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(2, 40).Draw(t, "length")
		fork := rapid.IntRange(1, length).Draw(t, "fork")
		first := rapid.IntRange(fork, length).Draw(t, "first")
		second := rapid.IntRange(first, length).Draw(t, "second")

		g := newGraph().commit("c1")
		for i := 2; i <= length; i++ {
			g.commit(fmt.Sprintf("c%d", i), fmt.Sprintf("c%d", i-1))
		}

		g.commit("rel", fmt.Sprintf("c%d", fork)).
			branch("* master", "master", fmt.Sprintf("c%d", length)).
			branch(rel050, rel050, "rel")

		r, err := New(g, Options{Mainline: "master", ReleasePrefix: "release/", RemotePattern: "origin"})
		require.NoError(t, err)

		a, err := r.Resolve(context.Background(), fmt.Sprintf("c%d", first))
		require.NoError(t, err)

		b, err := r.Resolve(context.Background(), fmt.Sprintf("c%d", second))
		require.NoError(t, err)

		require.Equal(t, first-fork, a.Distance)
		require.GreaterOrEqual(t, b.Distance, a.Distance)
		require.Equal(t, a.Distance == 0, a.IsRelease())
		require.Equal(t, first == fork, a.IsRelease())
	})
}
