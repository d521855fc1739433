// Package version exposes build metadata of get-version itself.
//
// Variables Version, Commit and BuildTime are injected at build time via Go
// ldflags. Not to be confused with the release versions the tool computes.
package version
