package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConvert()
	c.normalizeOCR()
	c.normalizePublish()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = ExpandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.RepoDir, err = ExpandPath(c.Paths.RepoDir); err != nil {
		return fmt.Errorf("paths.repo_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" && c.Paths.RepoDir != "" {
		c.Paths.StateDir = filepath.Join(c.Paths.RepoDir, StateDirName)
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConvert() {
	c.Convert.Format = strings.ToLower(strings.TrimSpace(c.Convert.Format))
	if strings.TrimSpace(c.Convert.Binary) == "" {
		c.Convert.Binary = defaultConvertBin
	}
}

func (c *Config) normalizeOCR() {
	c.OCR.Language = strings.TrimSpace(c.OCR.Language)
	if strings.TrimSpace(c.OCR.Binary) == "" {
		c.OCR.Binary = defaultOCRBin
	}
}

func (c *Config) normalizePublish() {
	c.Publish.BaseURL = strings.TrimRight(strings.TrimSpace(c.Publish.BaseURL), "/")
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
