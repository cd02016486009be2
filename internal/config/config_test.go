package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"chartmeta/internal/config"
)

// isolate points HOME and the working directory at fresh temp dirs and clears
// the CHARTMETA_* overrides for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{"CHARTMETA_MB_CONTACT", "CHARTMETA_LOG_LEVEL", "CHARTMETA_CHART_URL"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	return home
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "chartmeta", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}

	def := config.Default()
	if cfg.Chart.BaseURL != def.Chart.BaseURL {
		t.Fatalf("unexpected chart base url %q", cfg.Chart.BaseURL)
	}
	if cfg.Matching.TitleThreshold != 0.5 || cfg.Matching.ArtistThreshold != 0.3 {
		t.Fatalf("unexpected thresholds %+v", cfg.Matching)
	}
	if !cfg.MusicBrainz.Enabled {
		t.Fatal("expected musicbrainz enabled by default")
	}
	if strings.Join(cfg.MusicBrainz.Includes, "+") != "discids+recordings" {
		t.Fatalf("unexpected includes %v", cfg.MusicBrainz.Includes)
	}
	if cfg.Chart.InsecureSkipVerify {
		t.Fatal("expected TLS verification on by default")
	}
	if cfg.ChartTimeout() != 30*time.Second {
		t.Fatalf("unexpected chart timeout %v", cfg.ChartTimeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[chart]
base_url = "https://charts.example.com/top/"
timeout_seconds = 5
insecure_skip_verify = true

[musicbrainz]
contact = "ops@example.com"
includes = [" Recordings ", "discids", "recordings"]

[matching]
title_threshold = 0.7

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Chart.BaseURL != "https://charts.example.com/top" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Chart.BaseURL)
	}
	if !cfg.Chart.InsecureSkipVerify {
		t.Fatal("expected insecure_skip_verify from file")
	}
	if cfg.Matching.TitleThreshold != 0.7 {
		t.Fatalf("title threshold = %v", cfg.Matching.TitleThreshold)
	}
	if cfg.Matching.ArtistThreshold != 0.3 {
		t.Fatalf("artist threshold should keep default, got %v", cfg.Matching.ArtistThreshold)
	}
	if strings.Join(cfg.MusicBrainz.Includes, ",") != "recordings,discids" {
		t.Fatalf("unexpected includes %v", cfg.MusicBrainz.Includes)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if got := cfg.MusicBrainzUserAgent(); got != "chartmeta/0.1 ( ops@example.com )" {
		t.Fatalf("unexpected user agent %q", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CHARTMETA_MB_CONTACT", "env@example.com")
	t.Setenv("CHARTMETA_LOG_LEVEL", "warn")
	t.Setenv("CHARTMETA_CHART_URL", "http://localhost:9000/chart")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MusicBrainz.Contact != "env@example.com" {
		t.Fatalf("contact = %q", cfg.MusicBrainz.Contact)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Chart.BaseURL != "http://localhost:9000/chart" {
		t.Fatalf("chart url = %q", cfg.Chart.BaseURL)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	isolate(t)
	t.Setenv("CHARTMETA_LOG_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("CHARTMETA_MB_CONTACT") })

	dotenv := "CHARTMETA_MB_CONTACT=dotenv@example.com\nCHARTMETA_LOG_LEVEL=debug\n"
	if err := os.WriteFile(".env", []byte(dotenv), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MusicBrainz.Contact != "dotenv@example.com" {
		t.Fatalf("expected contact from .env, got %q", cfg.MusicBrainz.Contact)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected process env to win over .env, got %q", cfg.Logging.Level)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("chartmeta.toml", []byte("[chart]\ndefault_count = 25\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "chartmeta.toml" {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Chart.DefaultCount != 25 {
		t.Fatalf("default count = %d", cfg.Chart.DefaultCount)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"title threshold above one", func(c *config.Config) { c.Matching.TitleThreshold = 1.5 }, "matching.title_threshold"},
		{"negative artist threshold", func(c *config.Config) { c.Matching.ArtistThreshold = -0.1 }, "matching.artist_threshold"},
		{"chart url without scheme", func(c *config.Config) { c.Chart.BaseURL = "billboard.com/charts" }, "chart.base_url"},
		{"negative chart timeout", func(c *config.Config) { c.Chart.TimeoutSeconds = -1 }, "chart.timeout_seconds"},
		{"count too large", func(c *config.Config) { c.Chart.DefaultCount = 500 }, "chart.default_count"},
		{"musicbrainz timeout", func(c *config.Config) { c.MusicBrainz.TimeoutSeconds = -5 }, "musicbrainz.timeout_seconds"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateSkipsDisabledMusicBrainz(t *testing.T) {
	cfg := config.Default()
	cfg.MusicBrainz.Enabled = false
	cfg.MusicBrainz.BaseURL = "not a url"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled musicbrainz to skip validation, got %v", err)
	}
}

func TestLoadRejectsInvalidThresholdFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[matching]\ntitle_threshold = 2.0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for out-of-range threshold")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	def := config.Default()
	if decoded.Chart.BaseURL != def.Chart.BaseURL || decoded.MusicBrainz.BaseURL != def.MusicBrainz.BaseURL {
		t.Fatalf("sample urls drifted from defaults: %+v", decoded)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestEncodeProducesTOML(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") || !strings.Contains(string(data), "title_threshold = 0.5") {
		t.Fatalf("unexpected encoding:\n%s", data)
	}
}

func TestMusicBrainzUserAgentWithoutContact(t *testing.T) {
	cfg := config.Default()
	if got := cfg.MusicBrainzUserAgent(); got != "chartmeta/0.1" {
		t.Fatalf("unexpected user agent %q", got)
	}
}
