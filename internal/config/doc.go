// Package config defines the settings used by get-version and provides
// helpers to load, validate and save them in YAML format.
//
// The settings describe the repository conventions: which binary runs git,
// which branch is the mainline, and how release branches are named.
package config
