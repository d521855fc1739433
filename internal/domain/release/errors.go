package release

import "errors"

var (
	// ErrInvalidVersionFormat is returned when a manual version override is not X.Y.Z.
	ErrInvalidVersionFormat = errors.New("invalid version format")
	// ErrNoApplicableVersion is returned when the commit predates every known release branch.
	ErrNoApplicableVersion = errors.New("no applicable release branch")
	// ErrCommandFailed is returned when the version control binary exits abnormally.
	ErrCommandFailed = errors.New("version control command failed")
	// ErrUnknownVariant is returned when a variant name is not recognized.
	ErrUnknownVariant = errors.New("unknown variant")
)
