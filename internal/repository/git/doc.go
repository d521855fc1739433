// Package git runs the git binary and exposes the read-only queries needed
// for version resolution: revision parsing, branch listing, merge bases and
// first-parent commit counts.
package git
