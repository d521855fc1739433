package release

import (
	"fmt"
	"regexp"
	"strconv"
)

// versionPattern is the only accepted shape of a manual version override.
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// Version is a major.minor.patch triple.
type Version struct {
	// Major is the major release number.
	Major int
	// Minor is the minor release number.
	Minor int
	// Patch is the patch number; auto-detected versions always use 0.
	Patch int
}

// String renders the version as X.Y.Z.
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// Compare orders versions by major, then minor, then patch.
// It returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// ValidateVersion checks that a manually supplied version is X.Y.Z.
// The string itself is used verbatim for rendering, so leading zeros survive.
func ValidateVersion(s string) error {
	if !versionPattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidVersionFormat, s)
	}

	return nil
}

// Branch identifies a remote release/X.Y branch.
type Branch struct {
	// Version holds the major and minor numbers parsed from the branch name; Patch is 0.
	Version Version
	// Name is the branch name as listed by git, e.g. remotes/origin/release/0.50.
	Name string
	// MergeBase is the commit where the branch forked from the mainline.
	MergeBase string
}

// Resolved is the outcome of resolving a commit against release branches.
type Resolved struct {
	// Version is the nearest older release version.
	Version Version
	// Branch is the release branch that was selected.
	Branch string
	// Commit is the full identifier of the described commit.
	Commit string
	// ShortHash is the abbreviated commit identifier; empty for releases.
	ShortHash string
	// Distance is the number of first-parent commits since the branch point.
	Distance int
}

// IsRelease reports whether the commit sits exactly at the branch point.
func (r *Resolved) IsRelease() bool {
	return r.Distance == 0
}
