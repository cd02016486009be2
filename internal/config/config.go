package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Chart contains settings for the chart page download.
type Chart struct {
	BaseURL            string `toml:"base_url"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	UserAgent          string `toml:"user_agent"`
	DefaultCount       int    `toml:"default_count"`
}

// MusicBrainz contains settings for the metadata lookup.
type MusicBrainz struct {
	Enabled        bool     `toml:"enabled"`
	BaseURL        string   `toml:"base_url"`
	UserAgent      string   `toml:"user_agent"`
	Contact        string   `toml:"contact"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	Includes       []string `toml:"includes"`
}

// Matching holds the similarity thresholds a release candidate must exceed.
type Matching struct {
	TitleThreshold  float64 `toml:"title_threshold"`
	ArtistThreshold float64 `toml:"artist_threshold"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for chartmeta.
//
// Configuration sections:
//   - Chart: chart page location, HTTP timeout and TLS verification
//   - MusicBrainz: metadata service location and identification
//   - Matching: title and artist similarity thresholds
//   - Logging: log format, level and optional file
type Config struct {
	Chart       Chart       `toml:"chart"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	Matching    Matching    `toml:"matching"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigRelPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, "", false, err
	}
	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
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

	defaultPath, err := expandPath(defaultConfigRelPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
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

// loadDotEnv populates unset environment variables from path. Variables that
// are already set win.
func loadDotEnv(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(envMusicBrainzContact); ok && strings.TrimSpace(value) != "" {
		c.MusicBrainz.Contact = value
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv(envChartURL); ok && strings.TrimSpace(value) != "" {
		c.Chart.BaseURL = value
	}
}

func expandPath(pathValue string) (string, error) {
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

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// ChartTimeout returns the chart request timeout.
func (c *Config) ChartTimeout() time.Duration {
	return time.Duration(c.Chart.TimeoutSeconds) * time.Second
}

// MusicBrainzTimeout returns the metadata request timeout.
func (c *Config) MusicBrainzTimeout() time.Duration {
	return time.Duration(c.MusicBrainz.TimeoutSeconds) * time.Second
}

// MusicBrainzUserAgent builds the identifying User-Agent MusicBrainz asks
// clients to send: "app/version ( contact )".
func (c *Config) MusicBrainzUserAgent() string {
	agent := strings.TrimSpace(c.MusicBrainz.UserAgent)
	contact := strings.TrimSpace(c.MusicBrainz.Contact)
	if contact == "" {
		return agent
	}
	return agent + " ( " + contact + " )"
}

// MaxCount is the largest chart count accepted from the command line.
func MaxCount() int {
	return maxChartCount
}
