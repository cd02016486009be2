package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeChart()
	c.normalizeMusicBrainz()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeChart() {
	c.Chart.BaseURL = strings.TrimRight(strings.TrimSpace(c.Chart.BaseURL), "/")
	if c.Chart.BaseURL == "" {
		c.Chart.BaseURL = defaultChartBaseURL
	}
	c.Chart.UserAgent = strings.TrimSpace(c.Chart.UserAgent)
	if c.Chart.UserAgent == "" {
		c.Chart.UserAgent = defaultChartUserAgent
	}
	if c.Chart.TimeoutSeconds == 0 {
		c.Chart.TimeoutSeconds = defaultChartTimeoutSeconds
	}
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultMusicBrainzUserAgent
	}
	c.MusicBrainz.Contact = strings.TrimSpace(c.MusicBrainz.Contact)
	if c.MusicBrainz.TimeoutSeconds == 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}

	includes := make([]string, 0, len(c.MusicBrainz.Includes))
	seen := make(map[string]struct{}, len(c.MusicBrainz.Includes))
	for _, inc := range c.MusicBrainz.Includes {
		inc = strings.ToLower(strings.TrimSpace(inc))
		if inc == "" {
			continue
		}
		if _, ok := seen[inc]; ok {
			continue
		}
		seen[inc] = struct{}{}
		includes = append(includes, inc)
	}
	if len(includes) == 0 {
		includes = append(includes, defaultMusicBrainzIncludes...)
	}
	c.MusicBrainz.Includes = includes
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}
