package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateChart(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateChart() error {
	if err := validateURL("chart.base_url", c.Chart.BaseURL); err != nil {
		return err
	}
	if c.Chart.TimeoutSeconds <= 0 {
		return errors.New("chart.timeout_seconds must be positive")
	}
	if c.Chart.DefaultCount < 0 || c.Chart.DefaultCount > maxChartCount {
		return fmt.Errorf("chart.default_count must be between 0 and %d", maxChartCount)
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	if !c.MusicBrainz.Enabled {
		return nil
	}
	if err := validateURL("musicbrainz.base_url", c.MusicBrainz.BaseURL); err != nil {
		return err
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		return errors.New("musicbrainz.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.TitleThreshold < 0 || c.Matching.TitleThreshold > 1 {
		return errors.New("matching.title_threshold must be between 0 and 1")
	}
	if c.Matching.ArtistThreshold < 0 || c.Matching.ArtistThreshold > 1 {
		return errors.New("matching.artist_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", field)
	}
	return nil
}
