package config

import (
	"errors"
	"fmt"
)

var supportedFormats = map[string]struct{}{
	"webp": {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// Validate ensures the configuration is usable. Format support is checked
// here, once, so an unsupported output format can never surface mid-batch.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.RepoDir == "" {
		return errors.New("paths.repo_dir must be set")
	}
	return nil
}

func (c *Config) validateConvert() error {
	if _, ok := supportedFormats[c.Convert.Format]; !ok {
		return fmt.Errorf("convert.format: unsupported value %q (want webp, jpg, jpeg, or png)", c.Convert.Format)
	}
	if c.Convert.MaxWidth <= 0 {
		return errors.New("convert.max_width must be positive")
	}
	if c.Convert.WebPQuality < 1 || c.Convert.WebPQuality > 100 {
		return errors.New("convert.webp_quality must be between 1 and 100")
	}
	if c.Convert.JPEGQuality < 1 || c.Convert.JPEGQuality > 100 {
		return errors.New("convert.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateOCR() error {
	if c.OCR.Enabled && c.OCR.Language == "" {
		return errors.New("ocr.language must be set when ocr.enabled is true")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.Ping && c.Publish.BaseURL == "" {
		return errors.New("publish.base_url must be set when publish.ping is true")
	}
	return nil
}
