// Package release contains the core domain types for version calculation.
//
// It defines Version (major.minor.patch), Branch (a remote release branch and
// its branch point on the mainline), Resolved (the outcome of resolution) and
// the packaging grammar used to render them for binaries, DEB and RPM packages.
package release
