// Package resolver finds the release a commit belongs to.
//
// Release branches are remote-tracking branches named <prefix>X.Y. The
// resolver picks the newest branch that forked from the mainline no later
// than the commit and measures the first-parent distance from that fork
// point. A distance of zero means the commit is the release itself.
package resolver
