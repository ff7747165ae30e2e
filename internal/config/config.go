package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	RepoDir   string `toml:"repo_dir"`
	StateDir  string `toml:"state_dir"`
}

// Convert contains web-asset conversion settings.
type Convert struct {
	Format      string `toml:"format"`
	MaxWidth    int    `toml:"max_width"`
	WebPQuality int    `toml:"webp_quality"`
	JPEGQuality int    `toml:"jpeg_quality"`
	PNGOptimize bool   `toml:"png_optimize"`
	Binary      string `toml:"binary"`
}

// OCR contains text recognition settings.
type OCR struct {
	Enabled  bool   `toml:"enabled"`
	Language string `toml:"language"`
	Binary   string `toml:"binary"`
}

// Metadata contains defaults applied during interactive capture.
type Metadata struct {
	Creator        string `toml:"creator"`
	Language       string `toml:"language"`
	DefaultLicense string `toml:"default_license"`
}

// Publish contains post-run publication settings.
type Publish struct {
	AutoCommit bool   `toml:"auto_commit"`
	AutoPush   bool   `toml:"auto_push"`
	BaseURL    string `toml:"base_url"`
	Ping       bool   `toml:"ping"`
}

// Run contains batch execution settings.
type Run struct {
	DryRun bool `toml:"dry_run"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tafel.
//
// Sections by subsystem:
//   - Paths: source scan directory, target repository, state directory
//   - Convert: output format, max width, per-format quality settings
//   - OCR: tesseract invocation for transcription suggestions
//   - Metadata: creator/language/license defaults for the collector
//   - Publish: git commit/push, sitemap base URL, search engine ping
//   - Run: dry-run default (the --dry-run flag overrides)
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Convert  Convert  `toml:"convert"`
	OCR      OCR      `toml:"ocr"`
	Metadata Metadata `toml:"metadata"`
	Publish  Publish  `toml:"publish"`
	Run      Run      `toml:"run"`
	Logging  Logging  `toml:"logging"`
}

// UsageError marks configuration and path problems. The CLI maps these to
// exit code 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/tafel/config.toml")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, &UsageError{Err: fmt.Errorf("open config: %w", err)}
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, &UsageError{Err: fmt.Errorf("parse config: %w", err)}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, &UsageError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, &UsageError{Err: err}
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tafel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the repository subdirectories and the state
// directory the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		filepath.Join(c.Paths.RepoDir, "images"),
		filepath.Join(c.Paths.RepoDir, "works"),
		c.Paths.StateDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ImageExtension returns the file extension for the configured output format.
// "jpeg" normalizes to "jpg" so asset paths stay uniform.
func (c *Config) ImageExtension() string {
	if c.Convert.Format == "jpeg" {
		return "jpg"
	}
	return c.Convert.Format
}

// ExpandPath resolves ~ prefixes and returns a cleaned absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
