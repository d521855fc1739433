package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
)

// Config holds the repository conventions used during version resolution.
type Config struct {
	// GitBinary is the git executable name or path.
	GitBinary string `yaml:"git_binary"`
	// MainlineBranch is the branch release branches fork from.
	MainlineBranch string `yaml:"mainline_branch"`
	// ReleasePrefix precedes the X.Y part of a release branch name.
	ReleasePrefix string `yaml:"release_prefix"`
	// RemotePattern matches the remote name in remotes/<remote>/<prefix>X.Y.
	RemotePattern string `yaml:"remote_pattern"`
	// DefaultVariant is used when --variant is not given.
	DefaultVariant release.Variant `yaml:"default_variant"`
	// LogLevel is the minimum level written to stderr.
	LogLevel string `yaml:"log_level"`
	// Timeout bounds every single git invocation.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "get-version.yaml"

	// DefaultGitBinary is looked up on PATH.
	DefaultGitBinary = "git"

	// DefaultMainlineBranch is the branch release branches fork from.
	DefaultMainlineBranch = "master"

	// DefaultReleasePrefix is the release branch naming convention.
	DefaultReleasePrefix = "release/"

	// DefaultRemotePattern matches any alphanumeric remote name.
	DefaultRemotePattern = "[a-zA-Z0-9]+"

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	// DefaultTimeout is the per-command timeout for git.
	DefaultTimeout = 10 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errMainlineRequired is returned when the mainline branch is blank.
	errMainlineRequired = errors.New("mainline branch must be provided")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings matching the conventional repository layout.
func Default() *Config {
	return &Config{
		GitBinary:      DefaultGitBinary,
		MainlineBranch: DefaultMainlineBranch,
		ReleasePrefix:  DefaultReleasePrefix,
		RemotePattern:  DefaultRemotePattern,
		DefaultVariant: release.Binary,
		LogLevel:       DefaultLogLevel,
		Timeout:        DefaultTimeout,
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load, but a missing file at the default
// location yields Default instead of an error. Explicit paths must exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, os.ErrNotExist) && (path == "" || path == DefaultConfigFilename) {
		return Default(), nil
	}

	return nil, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills in defaults for empty ones.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	settings.MainlineBranch = strings.TrimSpace(settings.MainlineBranch)
	if settings.MainlineBranch == "" {
		return errMainlineRequired
	}

	if settings.GitBinary == "" {
		settings.GitBinary = DefaultGitBinary
	}

	if settings.ReleasePrefix == "" {
		settings.ReleasePrefix = DefaultReleasePrefix
	}

	if settings.RemotePattern == "" {
		settings.RemotePattern = DefaultRemotePattern
	}

	if _, err := regexp.Compile(settings.RemotePattern); err != nil {
		return fmt.Errorf("invalid remote pattern: %w", err)
	}

	if settings.DefaultVariant == "" {
		settings.DefaultVariant = release.Binary
	}

	variant, err := release.ParseVariant(string(settings.DefaultVariant))
	if err != nil {
		return fmt.Errorf("invalid default variant: %w", err)
	}

	settings.DefaultVariant = variant

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}
