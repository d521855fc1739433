// Package gitfixture builds throwaway git repositories for tests.
package gitfixture

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture is a repository with two remote release branches:
//
//	first - m2 - m3 - m4 - m5 - (12 commits) master
//	         \              \
//	          r49            r50               origin/release/0.49, origin/release/0.50
type Fixture struct {
	// Dir is the working tree.
	Dir string
	// First is the root commit, older than every release branch.
	First string
	// Fork50 is where release/0.50 forked from master.
	Fork50 string
	// R50 is the only commit on release/0.50.
	R50 string
	// Head is the tip of master.
	Head string
}

// Git runs git in dir with an isolated identity and returns trimmed stdout.
func Git(t testing.TB, dir string, args ...string) string {
	t.Helper()

	full := append([]string{
		"-c", "user.name=get-version",
		"-c", "user.email=get-version@example.com",
		"-c", "commit.gpgsign=false",
	}, args...)

	cmd := exec.Command("git", full...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)

	return strings.TrimSpace(string(out))
}

// ShortHash abbreviates a revision the way the resolver does.
func (f *Fixture) ShortHash(t testing.TB, rev string) string {
	t.Helper()

	return Git(t, f.Dir, "rev-parse", "--short", rev)
}

func commit(t testing.TB, dir, message string) string {
	t.Helper()

	Git(t, dir, "commit", "-q", "--allow-empty", "-m", message)

	return Git(t, dir, "rev-parse", "HEAD")
}

// New builds the repository or skips the test when git is missing.
func New(t testing.TB) *Fixture {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available")
	}

	dir := t.TempDir()
	f := &Fixture{Dir: dir}

	Git(t, dir, "init", "-q")
	Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")

	f.First = commit(t, dir, "first")
	commit(t, dir, "m2")

	Git(t, dir, "checkout", "-q", "-b", "stabilize-0.49")
	commit(t, dir, "r49")
	Git(t, dir, "update-ref", "refs/remotes/origin/release/0.49", "HEAD")
	Git(t, dir, "checkout", "-q", "master")

	commit(t, dir, "m3")
	commit(t, dir, "m4")
	f.Fork50 = commit(t, dir, "m5")

	Git(t, dir, "checkout", "-q", "-b", "stabilize-0.50")
	f.R50 = commit(t, dir, "r50")
	Git(t, dir, "update-ref", "refs/remotes/origin/release/0.50", "HEAD")
	Git(t, dir, "checkout", "-q", "master")

	for i := 1; i <= 12; i++ {
		f.Head = commit(t, dir, fmt.Sprintf("feature %d", i))
	}

	return f
}
