package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"chartmeta/internal/chart"
)

type cliTestEnv struct {
	configPath   string
	chartHits    atomic.Int32
	releaseHits  atomic.Int32
	lastChartUA  atomic.Value
	lastSearchUA atomic.Value
}

func chartPage(n int) string {
	var b strings.Builder
	b.WriteString(`<html><body><ol>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<li class="chart-list__element">
			<span class="chart-element__rank__number">%d</span>
			<span class="chart-element__information__song">Album %d</span>
			<span class="chart-element__information__artist">Artist %d</span>
			<span class="chart-element__meta text--center text--week">%d</span>
		</li>`, i, i, i, i+1)
	}
	b.WriteString(`</ol></body></html>`)
	return b.String()
}

// setupCLITestEnv starts fake chart and MusicBrainz servers and writes a
// config pointing at them. Every release resolves to a 12-track medium.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	env := &cliTestEnv{}

	chartSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.chartHits.Add(1)
		env.lastChartUA.Store(r.UserAgent())
		switch r.URL.Path {
		case "/charts/billboard-200", "/charts/billboard-200/2001-06-02":
			_, _ = w.Write([]byte(chartPage(10)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(chartSrv.Close)

	mbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/release" {
			env.lastSearchUA.Store(r.UserAgent())
			query := r.URL.Query().Get("query")
			var title, artist string
			if _, err := fmt.Sscanf(query, "Album %s Artist %s", &title, &artist); err != nil {
				_, _ = w.Write([]byte(`{"releases":[]}`))
				return
			}
			fmt.Fprintf(w, `{"releases":[{"id":"mb-%s","title":"Album %s","artist-credit":[{"name":"Artist %s","artist":{"name":"Artist %s"}}]}]}`,
				title, title, artist, artist)
			return
		}
		env.releaseHits.Add(1)
		_, _ = w.Write([]byte(`{"id":"x","media":[{"track-count":12}]}`))
	}))
	t.Cleanup(mbSrv.Close)

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Chdir(base)
	for _, key := range []string{"CHARTMETA_MB_CONTACT", "CHARTMETA_LOG_LEVEL", "CHARTMETA_CHART_URL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	env.configPath = filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[chart]
base_url = %q
user_agent = "chartmeta-test"

[musicbrainz]
base_url = %q
contact = "tests@example.com"

[logging]
level = "debug"
`, chartSrv.URL+"/charts/billboard-200", mbSrv.URL)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestChartFlagsBypassPrompts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"--date", "2001-06-02", "--count", "3", "--no-enrich"}, env.configPath, "")
	if err != nil {
		t.Fatalf("chartmeta: %v (stderr=%s)", err, stderr)
	}
	requireContains(t, out, "Album 1")
	requireContains(t, out, "Album 3")
	if strings.Contains(out, "Album 4") {
		t.Fatalf("expected only 3 rows, got:\n%s", out)
	}
	if strings.Contains(stderr, "Week date") || strings.Contains(stderr, "How many") {
		t.Fatalf("did not expect prompts, got %q", stderr)
	}
	if env.releaseHits.Load() != 0 {
		t.Fatal("expected --no-enrich to skip MusicBrainz")
	}
	if ua, _ := env.lastChartUA.Load().(string); ua != "chartmeta-test" {
		t.Fatalf("chart user agent = %q", ua)
	}
	requireContains(t, stderr, "chart fetched")
	requireContains(t, stderr, "run_id=")
}

func TestChartReadsAnswersFromStdin(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "--no-enrich"}, env.configPath, "2001-06-02\n2\n")
	if err != nil {
		t.Fatalf("chartmeta: %v", err)
	}
	var rows []chart.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, out)
	}
	if len(rows) != 2 || rows[1].Rank != "2" || rows[1].WeeksOnChart != "3" {
		t.Fatalf("unexpected rows %#v", rows)
	}
}

func TestChartJSONWithEnrichment(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--date", "2001-06-02", "--count", "4", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("chartmeta: %v", err)
	}
	var rows []chart.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, out)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.TrackCount != "12" {
			t.Fatalf("row %s track count = %q, want 12", row.Rank, row.TrackCount)
		}
	}
	if env.releaseHits.Load() != 4 {
		t.Fatalf("expected 4 release lookups, got %d", env.releaseHits.Load())
	}
	if ua, _ := env.lastSearchUA.Load().(string); ua != "chartmeta/0.1 ( tests@example.com )" {
		t.Fatalf("musicbrainz user agent = %q", ua)
	}
}

func TestChartTableIncludesTrackCounts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--date", "2001-06-02", "--count", "1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("chartmeta: %v", err)
	}
	requireContains(t, strings.ToLower(out), "tracks")
	requireContains(t, out, "Artist 1")
	requireContains(t, out, "12")
}

func TestChartRejectsInvalidInput(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"bad date flag", []string{"--date", "06/02/2001", "--count", "3"}, "", "YYYY-MM-DD"},
		{"count too large", []string{"--date", "2001-06-02", "--count", "201"}, "", "between 1 and 200"},
		{"count zero", []string{"--date", "2001-06-02", "--count", "0"}, "", "between 1 and 200"},
		{"non numeric count", []string{"--date", "2001-06-02"}, "lots\n", "whole number"},
		{"no stdin", nil, "", "no answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args, env.configPath, tt.stdin)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
	if env.chartHits.Load() != 0 {
		t.Fatalf("expected no chart requests for invalid input, got %d", env.chartHits.Load())
	}
}

func TestChartFetchFailureIsFatal(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--date", "1999-01-01", "--count", "3"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected error when chart page is missing")
	}
	requireContains(t, err.Error(), "fetch chart")
	if errors.Is(err, chart.ErrInvalidDate) {
		t.Fatalf("valid date should not be reported as invalid: %v", err)
	}
}

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[musicbrainz]")
	requireContains(t, out, "tests@example.com")
}

func TestInvalidConfigFails(t *testing.T) {
	setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[matching]\nartist_threshold = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, path, ""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Chart site")
	requireContains(t, out, "MusicBrainz")

	broken := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(broken, []byte("[chart]\nbase_url = \"http://127.0.0.1:1/nothing\"\ntimeout_seconds = 2\n\n[musicbrainz]\nenabled = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err = runCLI(t, []string{"check"}, broken, "")
	if err == nil {
		t.Fatalf("expected failing check, got:\n%s", out)
	}
	requireContains(t, out, "FAIL")
}
