package preflight

import (
	"context"
	"path/filepath"

	"chartmeta/internal/config"
	"chartmeta/internal/httpclient"
	"chartmeta/internal/musicbrainz"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	chartClient := httpclient.New(httpclient.Options{
		Timeout:            cfg.ChartTimeout(),
		UserAgent:          cfg.Chart.UserAgent,
		InsecureSkipVerify: cfg.Chart.InsecureSkipVerify,
	})
	results = append(results, CheckEndpoint(ctx, "Chart site", chartClient, cfg.Chart.BaseURL))

	if cfg.MusicBrainz.Enabled {
		client, err := musicbrainz.New(cfg.MusicBrainz.BaseURL, cfg.MusicBrainzUserAgent(),
			musicbrainz.WithHTTPClient(httpclient.New(httpclient.Options{
				Timeout:   cfg.MusicBrainzTimeout(),
				UserAgent: cfg.MusicBrainzUserAgent(),
			})),
		)
		if err != nil {
			results = append(results, Result{Name: "MusicBrainz", Detail: err.Error()})
		} else {
			results = append(results, CheckMusicBrainz(ctx, client))
		}
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	return results
}
